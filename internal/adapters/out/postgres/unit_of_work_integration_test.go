package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freightledger/internal/adapters/out/postgres"
	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/services"
	"freightledger/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		orders, order_legs,
		carriers, carrier_tasks, carrier_orders,
		registries, registry_carriers, registry_ratings,
		registry_recipients, registry_balances, registry_admitted,
		audit_events`).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newCarrier(name string) *carrier.Carrier {
	c, err := carrier.NewCarrier(kernel.NewUUID(), name, kernel.NewUUID())
	suite.Require().NoError(err)
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(shipper kernel.UUID, carrierLegs ...order.Leg) *order.Order {
	originLeg, err := order.NewLeg(shipper, order.CodeInit, 0)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), shipper, append([]order.Leg{originLeg}, carrierLegs...))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) leg(party kernel.UUID, target order.StatusCode, incentive int64) order.Leg {
	l, err := order.NewLeg(party, target, incentive)
	suite.Require().NoError(err)
	return l
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.CarrierRepository(), "First instance should provide carrier repository")
	suite.NotNil(uow2.RegistryRepository(), "Second instance should provide registry repository")
	suite.NotNil(uow2.AuditRepository(), "Second instance should provide audit repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_OrderRoundTrip verifies an order with its itinerary survives
// a store-and-load cycle intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	shipper := kernel.NewUUID()
	hauler := suite.newCarrier("Meridian Freight")
	testOrder := suite.newOrder(shipper,
		suite.leg(hauler.ID(), order.CodeWarehousing, 5),
		suite.leg(hauler.ID(), order.CodeComplete, 3),
	)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(0, retrieved.CurrentStep())
	suite.Len(retrieved.Legs(), 3)
	secondLeg, err := retrieved.Leg(1)
	suite.Require().NoError(err)
	suite.True(secondLeg.Party().IsEqual(hauler.ID()))
	suite.Equal(int64(5), secondLeg.Incentive())
	suite.Equal(testOrder.TotalIncentive(), retrieved.TotalIncentive())
}

// TestUnitOfWork_CarrierRoundTrip verifies a carrier with launched tasks and
// held orders survives a store-and-load cycle intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CarrierRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	hauler := suite.newCarrier("Meridian Freight")
	firstOrder := kernel.NewUUID()
	secondOrder := kernel.NewUUID()
	suite.Require().NoError(hauler.Launch(firstOrder, 1))
	suite.Require().NoError(hauler.Launch(firstOrder, 2))
	suite.Require().NoError(hauler.TakeOrder(firstOrder))
	suite.Require().NoError(hauler.TakeOrder(secondOrder))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, hauler))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrieved, err := newUow.CarrierRepository().Get(ctx, hauler.ID())
	suite.Require().NoError(err)

	suite.Equal("Meridian Freight", retrieved.Name())
	suite.True(retrieved.PayoutRecipient().IsEqual(hauler.PayoutRecipient()))
	suite.True(retrieved.IsLaunched(firstOrder, 1))
	suite.True(retrieved.IsLaunched(firstOrder, 2))
	suite.False(retrieved.IsLaunched(secondOrder, 1))
	suite.Equal([]kernel.UUID{firstOrder, secondOrder}, retrieved.Orders())
}

// TestUnitOfWork_CarrierUpdateReleasesOrders verifies that an order released
// by the aggregate disappears from storage on update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CarrierUpdateReleasesOrders() {
	ctx := context.Background()
	uow := suite.factory.Create()

	hauler := suite.newCarrier("Meridian Freight")
	orderID := kernel.NewUUID()
	suite.Require().NoError(hauler.TakeOrder(orderID))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, hauler))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(hauler.ReleaseOrder(orderID))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CarrierRepository().Update(ctx, hauler))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	retrieved, err := newUow.CarrierRepository().Get(ctx, hauler.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.HoldsOrder(orderID))
	suite.Empty(retrieved.Orders())
}

// TestUnitOfWork_RegistryRoundTrip verifies the registry singleton with all
// child rows survives a save-and-load cycle, including insertion order.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RegistryRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	reg, err := uow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err, "First load should materialize an empty registry")
	suite.Equal(int64(1), reg.NextTrackingID())

	first := kernel.NewUUID()
	second := kernel.NewUUID()
	suite.Require().NoError(reg.RegisterCarrier(first))
	suite.Require().NoError(reg.RegisterCarrier(second))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RegistryRepository().Save(ctx, reg))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	restored, err := newUow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)

	suite.Equal([]kernel.UUID{first, second}, restored.Carriers())
	suite.True(restored.IsRegistered(first))
	suite.Equal(int64(1), restored.NextTrackingID())
}

// TestUnitOfWork_TrackingScenario drives a full admission, report and
// completion through the coordinator inside unit of work transactions.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TrackingScenario() {
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	coordinator := services.NewTrackingCoordinator()

	shipper := kernel.NewUUID()
	hauler := suite.newCarrier("Meridian Freight")
	testOrder := suite.newOrder(shipper, suite.leg(hauler.ID(), order.CodeComplete, 8))

	// Enrollment and creation.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	reg, err := uow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(reg.RegisterCarrier(hauler.ID()))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, hauler))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.RegistryRepository().Save(ctx, reg))
	suite.Require().NoError(uow.Commit(ctx))

	// Submission.
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loadedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	reg, err = uow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	loadedCarrier, err := uow.CarrierRepository().Get(ctx, hauler.ID())
	suite.Require().NoError(err)

	evts, err := coordinator.Submit(loadedOrder, reg, loadedCarrier, shipper, at)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))
	suite.Require().NoError(uow.CarrierRepository().Update(ctx, loadedCarrier))
	suite.Require().NoError(uow.RegistryRepository().Save(ctx, reg))
	suite.Require().NoError(uow.AuditRepository().Append(ctx, evts))
	suite.Require().NoError(uow.Commit(ctx))

	// Launch and report.
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loadedOrder, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	reg, err = uow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	loadedCarrier, err = uow.CarrierRepository().Get(ctx, hauler.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loadedCarrier.Launch(loadedOrder.ID(), 1))

	carriersByParty := map[kernel.UUID]*carrier.Carrier{loadedCarrier.ID(): loadedCarrier}
	evts, err = coordinator.ReportLeg(loadedOrder, reg, loadedCarrier, carriersByParty, 1, at, order.CodeComplete)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))
	suite.Require().NoError(uow.CarrierRepository().Update(ctx, loadedCarrier))
	suite.Require().NoError(uow.RegistryRepository().Save(ctx, reg))
	suite.Require().NoError(uow.AuditRepository().Append(ctx, evts))
	suite.Require().NoError(uow.Commit(ctx))

	// Final state.
	newUow := suite.factory.Create()
	finalOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(finalOrder.IsCompleted())
	suite.Equal(int64(1), finalOrder.TrackingID())

	finalRegistry, err := newUow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(8), finalRegistry.BalanceOf(hauler.PayoutRecipient()).AccruedTotal)
	suite.Equal(int64(1), finalRegistry.RatingOf(hauler.ID()).CompletedTotal)

	records, err := newUow.AuditRepository().GetRecent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(records, 4)
	suite.Equal(events.IncentiveUpdated{}.EventName(), records[0].Name)
	suite.Equal(events.OrderCompleted{}.EventName(), records[1].Name)
}

// TestUnitOfWork_ConcurrentSubmissionsSerialize verifies two simultaneous
// submissions serialize on the registry row lock and receive distinct
// sequential tracking ids.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentSubmissionsSerialize() {
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	coordinator := services.NewTrackingCoordinator()

	shipper := kernel.NewUUID()
	hauler := suite.newCarrier("Meridian Freight")
	first := suite.newOrder(shipper, suite.leg(hauler.ID(), order.CodeComplete, 8))
	second := suite.newOrder(shipper, suite.leg(hauler.ID(), order.CodeComplete, 3))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	reg, err := uow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(reg.RegisterCarrier(hauler.ID()))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, hauler))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, first))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, second))
	suite.Require().NoError(uow.RegistryRepository().Save(ctx, reg))
	suite.Require().NoError(uow.Commit(ctx))

	submit := func(orderID kernel.UUID) error {
		txUow := suite.factory.Create()
		if beginErr := txUow.Begin(ctx); beginErr != nil {
			return beginErr
		}
		defer func() {
			_ = txUow.Rollback(ctx)
		}()

		loadedOrder, txErr := txUow.OrderRepository().Get(ctx, orderID)
		if txErr != nil {
			return txErr
		}
		txReg, txErr := txUow.RegistryRepository().Get(ctx)
		if txErr != nil {
			return txErr
		}
		loadedCarrier, txErr := txUow.CarrierRepository().Get(ctx, hauler.ID())
		if txErr != nil {
			return txErr
		}

		if _, txErr = coordinator.Submit(loadedOrder, txReg, loadedCarrier, shipper, at); txErr != nil {
			return txErr
		}
		if txErr = txUow.OrderRepository().Update(ctx, loadedOrder); txErr != nil {
			return txErr
		}
		if txErr = txUow.CarrierRepository().Update(ctx, loadedCarrier); txErr != nil {
			return txErr
		}
		if txErr = txUow.RegistryRepository().Save(ctx, txReg); txErr != nil {
			return txErr
		}
		return txUow.Commit(ctx)
	}

	group := new(errgroup.Group)
	group.Go(func() error { return submit(first.ID()) })
	group.Go(func() error { return submit(second.ID()) })
	suite.Require().NoError(group.Wait())

	newUow := suite.factory.Create()
	firstFinal, err := newUow.OrderRepository().Get(ctx, first.ID())
	suite.Require().NoError(err)
	secondFinal, err := newUow.OrderRepository().Get(ctx, second.ID())
	suite.Require().NoError(err)
	suite.ElementsMatch(
		[]int64{1, 2},
		[]int64{firstFinal.TrackingID(), secondFinal.TrackingID()},
		"Both submissions must receive distinct sequential tracking ids",
	)

	finalRegistry, err := newUow.RegistryRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(3), finalRegistry.NextTrackingID())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	shipper := kernel.NewUUID()
	hauler := suite.newCarrier("Meridian Freight")
	testOrder := suite.newOrder(shipper, suite.leg(hauler.ID(), order.CodeComplete, 8))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, hauler))

	_, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.CarrierRepository().Get(ctx, hauler.ID())
	suite.Require().Error(err, "Carrier should not exist after rollback")
}

// TestUnitOfWorkIntegration runs the complete integration test suite.
func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
