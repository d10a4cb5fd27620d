package hashpool

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/pkg/errors"
)

// Primitive is the blocking hash implementation executed on the pool's
// workers. It is deliberately synchronous; the pool exists to keep such calls
// off the request-serving goroutines. Tests substitute it to control latency.
type Primitive interface {
	// Hash derives a salted digest from a plaintext password.
	Hash(plaintext string) (string, error)

	// Verify compares plaintext against a reference digest. A mismatch is
	// (false, nil); an error means the reference could not be parsed or the
	// comparison failed outright.
	Verify(plaintext, reference string) (bool, error)
}

// bcryptPrimitive implements Primitive with golang.org/x/crypto/bcrypt.
type bcryptPrimitive struct {
	cost int
}

func newBcryptPrimitive(cost int) bcryptPrimitive {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return bcryptPrimitive{cost: cost}
}

func (b bcryptPrimitive) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash failed")
	}

	return string(digest), nil
}

func (b bcryptPrimitive) Verify(plaintext, reference string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(reference), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		// The operation succeeded; the password simply does not match.
		return false, nil
	default:
		// Unparseable digest, unknown scheme prefix, and similar. Distinct
		// from a mismatch so callers never read garbage input as "wrong
		// password".
		return false, errors.Wrap(err, "bcrypt verify failed")
	}
}
