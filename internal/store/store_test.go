// internal/store/store_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/models"
)

type StoreTestSuite struct {
	suite.Suite
	client *backend.Memory
	store  *Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.client = backend.NewMemory()
	suite.store = New(suite.client)
}

func (suite *StoreTestSuite) lead(id, name string) *models.Lead {
	return &models.Lead{
		ID:     id,
		Name:   name,
		Email:  name + "@example.com",
		Mobile: "+919876543210",
		Status: models.LeadStatusPending,
		Date:   time.Now(),
	}
}

func (suite *StoreTestSuite) TestAddLeadSuccess() {
	ok := suite.store.AddLead(context.Background(), suite.lead("1001", "asha"))

	assert.True(suite.T(), ok)

	leads := suite.store.Leads()
	require.Len(suite.T(), leads, 1)
	assert.Equal(suite.T(), "asha", leads[0].Name)
	assert.Equal(suite.T(), models.LeadStatusPending, leads[0].Status)

	notifications := suite.store.Notifications()
	require.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), models.NotificationSuccess, notifications[0].Type)
	assert.Equal(suite.T(), "Enquiry submitted successfully", notifications[0].Message)
}

func (suite *StoreTestSuite) TestAddLeadFailure() {
	suite.client.SetError(backend.TableLeads, errors.New("insert rejected"))

	ok := suite.store.AddLead(context.Background(), suite.lead("1001", "asha"))

	assert.False(suite.T(), ok)
	assert.Empty(suite.T(), suite.store.Leads())

	notifications := suite.store.Notifications()
	require.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), models.NotificationError, notifications[0].Type)
}

func (suite *StoreTestSuite) TestFetchAllPartialFailure() {
	require.NoError(suite.T(), suite.client.InsertProduct(context.Background(), &models.Product{
		Title: "Cloud CRM", PriceRange: "10k-50k", Slug: "cloud-crm",
	}))
	suite.store.FetchAll(context.Background())
	require.Len(suite.T(), suite.store.Products(), 1)

	// Products start failing; leads keep flowing.
	suite.client.SetError(backend.TableProducts, errors.New("products unavailable"))
	require.NoError(suite.T(), suite.client.InsertLead(context.Background(), suite.lead("1002", "ravi")))

	suite.store.FetchAll(context.Background())

	assert.Len(suite.T(), suite.store.Products(), 1, "failed collection keeps its previous value")
	assert.Len(suite.T(), suite.store.Leads(), 1, "healthy collections still refresh")
	assert.Empty(suite.T(), suite.store.Notifications(), "fetch errors are not user notifications")
}

func (suite *StoreTestSuite) TestSiteConfigDefaultsWhenMissing() {
	suite.store.FetchAll(context.Background())
	assert.Equal(suite.T(), "BantConfirm", suite.store.SiteConfig().SiteName)
}

func (suite *StoreTestSuite) TestUpdateLeadStatus() {
	require.True(suite.T(), suite.store.AddLead(context.Background(), suite.lead("1001", "asha")))

	ok := suite.store.UpdateLeadStatus(context.Background(), "1001", models.LeadStatusVerified)

	assert.True(suite.T(), ok)
	leads := suite.store.Leads()
	require.Len(suite.T(), leads, 1)
	assert.Equal(suite.T(), models.LeadStatusVerified, leads[0].Status)
}

func (suite *StoreTestSuite) TestUpdateLeadStatusInvalid() {
	require.True(suite.T(), suite.store.AddLead(context.Background(), suite.lead("1001", "asha")))

	ok := suite.store.UpdateLeadStatus(context.Background(), "1001", models.LeadStatus("Bogus"))

	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), models.LeadStatusPending, suite.store.Leads()[0].Status)

	notifications := suite.store.Notifications()
	found := false
	for _, n := range notifications {
		if n.Type == models.NotificationWarning {
			found = true
		}
	}
	assert.True(suite.T(), found, "invalid status raises a warning")
}

func (suite *StoreTestSuite) TestAddVendorRegistrationExactlyOnce() {
	reg := &models.VendorRegistration{
		Name:        "Priya",
		CompanyName: "Acme Software",
		Mobile:      "+919876543210",
		Email:       "priya@acme.example",
		ProductName: "Acme HRMS",
	}

	ok := suite.store.AddVendorRegistration(context.Background(), reg)

	assert.True(suite.T(), ok)
	stored, err := suite.client.VendorRegistrations(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), stored, 1, "one submission writes exactly one row")
	assert.Equal(suite.T(), "Acme Software", stored[0].CompanyName)
	assert.False(suite.T(), stored[0].Date.IsZero(), "date defaults to submission time")
}

func (suite *StoreTestSuite) TestAddProductValidationAndSlug() {
	ok := suite.store.AddProduct(context.Background(), &models.Product{Title: "No Price"})
	assert.False(suite.T(), ok, "price range is required")

	p := &models.Product{Title: "Cloud CRM Suite", PriceRange: "10k-50k"}
	ok = suite.store.AddProduct(context.Background(), p)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "cloud-crm-suite", p.Slug)

	products := suite.store.Products()
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "cloud-crm-suite", products[0].Slug)
}

func (suite *StoreTestSuite) TestRealtimeChangeTriggersRefresh() {
	suite.store.StartRealtime()

	// A mutation from elsewhere publishes a change event; the snapshot
	// catches up without a local write.
	require.NoError(suite.T(), suite.client.InsertLead(context.Background(), suite.lead("2001", "kiran")))

	assert.Eventually(suite.T(), func() bool {
		return len(suite.store.Leads()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func (suite *StoreTestSuite) TestUpdateSiteConfig() {
	cfg := suite.store.SiteConfig()
	cfg.BannerTitle = "Verified B2B Software"

	ok := suite.store.UpdateSiteConfig(context.Background(), &cfg)

	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "Verified B2B Software", suite.store.SiteConfig().BannerTitle)

	notifications := suite.store.Notifications()
	require.NotEmpty(suite.T(), notifications)
	assert.Equal(suite.T(), "Settings saved", notifications[0].Message)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
