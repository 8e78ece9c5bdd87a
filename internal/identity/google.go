package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultCertsURL is where the provider publishes the x509 certificates used
// to sign ID tokens, as a JSON object mapping key id to PEM certificate.
const DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// The provider rotates signing keys; serving stale ones is harmless because
// unknown kids trigger a refresh on the next lookup.
const certRefreshInterval = 1 * time.Hour

const issuerPrefix = "https://securetoken.google.com/"

// tokenClaims is the subset of the provider's ID token payload we use.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GoogleVerifier validates RS256 ID tokens issued by the identity provider
// for a single project. Signature keys are fetched from the provider's cert
// endpoint and cached process-wide.
type GoogleVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey // by kid
	expires time.Time
}

// NewGoogleVerifier creates a verifier for the given provider project.
// certsURL may be empty to use DefaultCertsURL.
func NewGoogleVerifier(projectID, certsURL string) *GoogleVerifier {
	if certsURL == "" {
		certsURL = DefaultCertsURL
	}
	return &GoogleVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the token's signature, expiry, issuer and audience, and
// returns the identity asserted by its claims. An empty token fails before
// any network call is attempted.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}
		return v.publicKey(ctx, kid)
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.Issuer != issuerPrefix+v.projectID {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrUnauthenticated, claims.Issuer)
	}
	if !claims.VerifyAudience(v.projectID, true) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrUnauthenticated)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token carries no user id", ErrUnauthenticated)
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// publicKey returns the signing key for kid, refreshing the cached cert set
// when the kid is unknown or the cache has gone stale.
func (v *GoogleVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expires)
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for key id %q", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching signing certificates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certificate endpoint returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decoding certificate response: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		block, _ := pem.Decode([]byte(pemCert))
		if block == nil {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		if pub, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keys[kid] = pub
		}
	}
	if len(keys) == 0 {
		return errors.New("certificate response contained no usable keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = time.Now().Add(certRefreshInterval)
	v.mu.Unlock()
	return nil
}
