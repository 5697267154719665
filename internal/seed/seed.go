package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// CreateDefaultData inserts a starter set of operators, contractors and
// properties. Every insert is keyed on a natural unique column with ON
// CONFLICT DO NOTHING, so re-running on a populated database is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (users, contractors, properties)...")
	var finalErr error

	users := []struct {
		email, name, role, title, phone, qualifications string
	}{
		{"operations@strataops.example", "Dana Wright", "admin", "Operations Manager", "021 555 0101", "APIA Member"},
		{"manager1@strataops.example", "Sam Porter", "account_manager", "Senior Body Corporate Manager", "021 555 0102", "BCCM Certified"},
		{"manager2@strataops.example", "Alex Ngata", "account_manager", "Body Corporate Manager", "021 555 0103", ""},
		{"support@strataops.example", "Riley Chen", "support", "Administrator", "021 555 0104", ""},
	}
	for _, u := range users {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO users (email, name, role, title, phone, qualifications)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING`,
			u.email, u.name, u.role, u.title, u.phone, u.qualifications)
		if err != nil {
			lgr.Error().Err(err).Str("email", u.email).Msg("Error seeding user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	contractors := []struct {
		name, category, contactPerson, email, phone string
	}{
		{"Harbour Insurance Brokers", "Insurance Broker", "J. Fletcher", "quotes@harbourbrokers.example", "09 555 0201"},
		{"Citywide Valuations", "Insurance Valuer", "M. Kaur", "admin@citywidevaluations.example", "09 555 0202"},
		{"Apex Building Compliance", "Compliance", "T. Leota", "bwof@apexcompliance.example", "09 555 0203"},
		{"Longrun Maintenance Planning", "Consultant", "P. Novak", "plans@longrun.example", "09 555 0204"},
	}
	for _, c := range contractors {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO contractors (name, category, contact_person, email, phone)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING`,
			c.name, c.category, c.contactPerson, c.email, c.phone)
		if err != nil {
			lgr.Error().Err(err).Str("name", c.name).Msg("Error seeding contractor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	now := time.Now()
	properties := []struct {
		bcNumber, name, address string
		units                   int
		complexType             string
		managerName             string
		hasBwof                 bool
		insuranceExpiry         time.Time
		bwofExpiry              time.Time
	}{
		{
			bcNumber: "BC 198211", name: "Harbourview Terraces",
			address: "12 Marine Parade, Auckland", units: 24,
			complexType: "Body Corporate", managerName: "Sam Porter",
			hasBwof:         true,
			insuranceExpiry: now.AddDate(0, 2, 0),
			bwofExpiry:      now.AddDate(0, 1, 0),
		},
		{
			bcNumber: "IS 440072", name: "Fernleaf Gardens Society",
			address: "3 Totara Lane, Wellington", units: 16,
			complexType: "Incorporated Society", managerName: "Alex Ngata",
			hasBwof:         false,
			insuranceExpiry: now.AddDate(0, 6, 0),
		},
	}
	for _, p := range properties {
		var bwofExpiry interface{}
		if p.hasBwof {
			bwofExpiry = p.bwofExpiry
		}
		_, err := dbPool.Exec(ctx, `
			INSERT INTO properties (bc_number, name, address, units, type, manager_name, has_bwof, insurance_expiry, bwof_expiry)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (bc_number) DO NOTHING`,
			p.bcNumber, p.name, p.address, p.units, p.complexType, p.managerName, p.hasBwof, p.insuranceExpiry, bwofExpiry)
		if err != nil {
			lgr.Error().Err(err).Str("bcNumber", p.bcNumber).Msg("Error seeding property")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data creation finished with errors")
	} else {
		lgr.Info().Msg("Default data check complete.")
	}
	return finalErr
}
