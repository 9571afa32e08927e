package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fixitfast/adminseed/internal/refdata"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// ErrSkipped marks a locality that does not get an account because its city
// name is blank or a placeholder.
var ErrSkipped = errors.New("locality skipped")

// Synthesizer derives administrator accounts from localities. Usernames and
// emails are pure functions of the locality; all accounts produced by one
// synthesizer share a single plaintext password.
type Synthesizer struct {
	domain   string
	password string
	cost     int
	logger   *slog.Logger
	issued   map[string]string
	now      func() time.Time
}

// NewSynthesizer builds a synthesizer for one run. Costs outside the bcrypt
// range fall back to DefaultCost.
func NewSynthesizer(domain, password string, cost int, logger *slog.Logger) *Synthesizer {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Synthesizer{
		domain:   domain,
		password: password,
		cost:     cost,
		logger:   logger,
		issued:   make(map[string]string),
		now:      time.Now,
	}
}

// Synthesize builds the account for one locality. It returns ErrSkipped for
// blank or placeholder city names, and a fatal error only when hashing fails.
func (s *Synthesizer) Synthesize(loc refdata.Locality) (Account, error) {
	city := strings.TrimSpace(loc.City)
	if isPlaceholder(city) {
		return Account{}, fmt.Errorf("%w: city %q", ErrSkipped, loc.City)
	}
	district := strings.TrimSpace(loc.District)

	username := Username(city, district)
	if first, clash := s.issued[username]; clash {
		// Known limitation: normalization is lossy, distinct raw names can
		// collide. The store's unique email index arbitrates.
		s.logger.Warn("username collision",
			"username", username, "first", first, "city", city, "district", district)
	} else {
		s.issued[username] = city + "/" + district
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.password), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password for %s: %w", username, err)
	}

	now := s.now().UTC()
	return Account{
		Name:          city + " Admin",
		Username:      username,
		Email:         username + "@" + s.domain,
		PasswordHash:  string(hash),
		PlainPassword: s.password,
		City:          city,
		District:      district,
		State:         loc.State,
		Pincode:       loc.Pincode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Username derives the deterministic login name for a city/district pair:
// lowercase, spaces and hyphens stripped, joined as city_district_admin.
func Username(city, district string) string {
	return normalize(city) + "_" + normalize(district) + "_admin"
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToLower(s)
}

func isPlaceholder(city string) bool {
	switch strings.ToUpper(city) {
	case "", "N/A", "NA":
		return true
	}
	return false
}
