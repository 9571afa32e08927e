package admin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixitfast/adminseed/internal/logging"
	"github.com/fixitfast/adminseed/internal/refdata"
)

const testPassword = "Secret@123"

func newTestSynthesizer() *Synthesizer {
	return NewSynthesizer("fixitfast.gov.in", testPassword, bcrypt.MinCost, logging.Discard())
}

func TestUsernameDerivation(t *testing.T) {
	require.Equal(t, "chennai_chennai_admin", Username("Chennai", "Chennai"))
	require.Equal(t, "velacheryeast_kanchipuram_admin", Username("Velachery East", "Kanchi-puram"))
	require.Equal(t, "ooty_thenilgiris_admin", Username("Ooty", "The Nilgiris"))
}

func TestUsernameIsStableAcrossRuns(t *testing.T) {
	require.Equal(t, Username("Madurai East", "Madurai"), Username("Madurai East", "Madurai"))
}

func TestSynthesizeBuildsVerifiableAccount(t *testing.T) {
	s := newTestSynthesizer()

	acc, err := s.Synthesize(refdata.Locality{
		Pincode:  "600001",
		City:     "Chennai",
		District: "Chennai",
		State:    "Tamil Nadu",
	})
	require.NoError(t, err)

	require.Equal(t, "Chennai Admin", acc.Name)
	require.Equal(t, "chennai_chennai_admin", acc.Username)
	require.Equal(t, "chennai_chennai_admin@fixitfast.gov.in", acc.Email)
	require.Equal(t, testPassword, acc.PlainPassword)
	require.False(t, acc.CreatedAt.IsZero())
	require.Equal(t, acc.CreatedAt, acc.UpdatedAt)

	// The stored hash must verify against the plaintext with any bcrypt
	// implementation.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(testPassword)))
}

func TestSynthesizeSkipsPlaceholderCities(t *testing.T) {
	s := newTestSynthesizer()

	for _, city := range []string{"", "N/A", "NA", "n/a", "  "} {
		_, err := s.Synthesize(refdata.Locality{City: city, District: "Salem"})
		require.ErrorIs(t, err, ErrSkipped, "city %q", city)
	}
}

func TestDistinctNormalizedKeysGetDistinctUsernames(t *testing.T) {
	s := newTestSynthesizer()

	a, err := s.Synthesize(refdata.Locality{City: "Erode", District: "Erode"})
	require.NoError(t, err)
	b, err := s.Synthesize(refdata.Locality{City: "Karur", District: "Karur"})
	require.NoError(t, err)

	require.NotEqual(t, a.Username, b.Username)
	require.NotEqual(t, a.Email, b.Email)
}

func TestNormalizationCollisionStillYieldsAccount(t *testing.T) {
	// Lossy normalization maps both to maduraieast_madurai_admin; the
	// synthesizer logs the clash but does not invent a different name.
	s := newTestSynthesizer()

	a, err := s.Synthesize(refdata.Locality{City: "Madurai East", District: "Madurai"})
	require.NoError(t, err)
	b, err := s.Synthesize(refdata.Locality{City: "Madurai-East", District: "Madurai"})
	require.NoError(t, err)

	require.Equal(t, a.Username, b.Username)
}

func TestDocumentNeverCarriesPlaintext(t *testing.T) {
	s := newTestSynthesizer()

	acc, err := s.Synthesize(refdata.Locality{
		Pincode: "625001", City: "Madurai", District: "Madurai", State: "Tamil Nadu",
	})
	require.NoError(t, err)

	raw, err := bson.Marshal(acc.Document())
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	for key, value := range doc {
		require.NotContains(t, strings.ToLower(key), "plain", "unexpected field %s", key)
		if str, ok := value.(string); ok {
			require.NotEqual(t, testPassword, str, "plaintext leaked through field %s", key)
		}
	}
	require.Equal(t, acc.PasswordHash, doc["password"])
	require.Equal(t, Role, doc["role"])
	require.Equal(t, Status, doc["status"])
	require.Equal(t, false, doc["emailVerified"])
	require.Nil(t, doc["lastLogin"])
}
