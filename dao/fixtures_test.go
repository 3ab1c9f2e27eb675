package dao_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/database/dbtest"
	"github.com/balojey/abdullateef-api/models/agent"
	"github.com/balojey/abdullateef-api/models/booking"
	"github.com/balojey/abdullateef-api/models/client"
	"github.com/balojey/abdullateef-api/models/enums"
	"github.com/balojey/abdullateef-api/models/hajj_package"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (context.Context, *gorm.DB) {
	t.Helper()
	return context.Background(), dbtest.New(t)
}

func strPtr(s string) *string { return &s }

func createAgent(t *testing.T, db *gorm.DB, first, last string) *agent.Agent {
	t.Helper()
	a, err := dao.NewAgentDAO(db).Create(context.Background(), dao.AgentInput{
		FirstName: first,
		LastName:  last,
	})
	require.NoError(t, err)
	return a
}

func createClient(t *testing.T, db *gorm.DB, first, last string, referee *uuid.UUID) *client.Client {
	t.Helper()
	c, err := dao.NewClientDAO(db).Create(context.Background(), dao.ClientInput{
		FirstName:      first,
		LastName:       last,
		Sex:            enums.GenderFemale,
		PhoneNumber:    "+2348000000000",
		PassportNumber: fmt.Sprintf("A%s", uuid.NewString()[:8]),
		Location:       enums.CountryNG,
		RefereeID:      referee,
	})
	require.NoError(t, err)
	return c
}

func createPackage(t *testing.T, db *gorm.DB, year int, commissionAmount int64) *hajj_package.HajjPackage {
	t.Helper()
	p, err := dao.NewHajjPackageDAO(db).Create(context.Background(), dao.HajjPackageInput{
		Year:             year,
		LocalPrice:       7_500_000,
		DiasporaPrice:    9_000_000,
		RegistrationFee:  500_000,
		CommissionAmount: commissionAmount,
	})
	require.NoError(t, err)
	return p
}

func createBooking(t *testing.T, db *gorm.DB, c *client.Client, p *hajj_package.HajjPackage, agentID *uuid.UUID) *booking.Booking {
	t.Helper()
	b, err := dao.NewBookingDAO(db).Create(context.Background(), dao.BookingInput{
		ClientID:  c.ID,
		PackageID: p.ID,
		AgentID:   agentID,
	})
	require.NoError(t, err)
	return b
}
