package integration_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/missionconnect/missionconnect/internal/config"
	"github.com/missionconnect/missionconnect/internal/database"
	"github.com/missionconnect/missionconnect/internal/security"
	"github.com/missionconnect/missionconnect/internal/services"
	"github.com/missionconnect/missionconnect/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func dbImage() string {
	if img := os.Getenv("DB_IMAGE"); img != "" {
		return img
	}
	return "mariadb:11"
}

// TestWithMariaDB exercises the service layer against a real MariaDB
// container instead of the in-memory SQLite the unit tests use.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage(),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for the database to be really ready
	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("RegisterAndLogin", func(t *testing.T) {
		testRegisterAndLogin(t, db)
	})

	t.Run("OwnershipScoping", func(t *testing.T) {
		testOwnershipScoping(t, db)
	})

	t.Run("VisitLifecycle", func(t *testing.T) {
		testVisitLifecycle(t, db)
	})

	t.Run("ContactCascadeDelete", func(t *testing.T) {
		testContactCascadeDelete(t, db)
	})
}

func authStack() (*security.Hasher, *security.TokenProvider) {
	return security.NewHasher(4), security.NewTokenProvider("integration-test-secret", time.Hour)
}

func testRegisterAndLogin(t *testing.T, db *gorm.DB) {
	hasher, tokens := authStack()
	email := helpers.UniqueEmail("register")
	password := helpers.GeneratePassword()

	result, err := services.Register(db, hasher, tokens, "Integration Tester", email, password)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("Expected a token from register")
	}

	// Duplicate email must be rejected
	if _, err := services.Register(db, hasher, tokens, "Again", email, password); !errors.Is(err, services.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for reused email, got %v", err)
	}

	login, err := services.Login(db, hasher, tokens, email, password)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Errorf("Login returned user %s, expected %s", login.User.ID, result.User.ID)
	}

	if _, err := services.Login(db, hasher, tokens, email, "wrong-password"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func testOwnershipScoping(t *testing.T, db *gorm.DB) {
	alice := helpers.CreateTestUser(t, db, "Alice", helpers.UniqueEmail("alice"))
	bob := helpers.CreateTestUser(t, db, "Bob", helpers.UniqueEmail("bob"))

	mine := helpers.CreateTestContact(t, db, alice.ID, "Samuel", "Lamanite", "555-0101")
	helpers.CreateTestContact(t, db, bob.ID, "Samuel", "Other", "555-0102")

	contacts, err := services.ListContacts(db, alice.ID, "")
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	for _, c := range contacts {
		if c.Owner != alice.ID && c.Missionary != alice.ID {
			t.Errorf("Contact %s leaked into another owner's list", c.ID)
		}
	}

	// A name query cannot widen the scope
	matches, err := services.ListContacts(db, alice.ID, "samuel")
	if err != nil {
		t.Fatalf("ListContacts with query failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != mine.ID {
		t.Errorf("Expected exactly alice's Samuel, got %d contacts", len(matches))
	}

	// Reading another user's contact by id is indistinguishable from absent
	if _, err := services.GetContact(db, bob.ID, mine.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for cross-owner read, got %v", err)
	}
}

func testVisitLifecycle(t *testing.T, db *gorm.DB) {
	user := helpers.CreateTestUser(t, db, "Visitor", helpers.UniqueEmail("visitor"))
	other := helpers.CreateTestUser(t, db, "Other", helpers.UniqueEmail("other"))
	contact := helpers.CreateTestContact(t, db, user.ID, "Maria", "Garcia", "555-0201")

	at := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	visit, err := services.CreateVisit(db, user.ID, contact.ID, at, "First discussion")
	if err != nil {
		t.Fatalf("CreateVisit failed: %v", err)
	}
	if visit.Contact == nil || visit.Contact.FirstName != "Maria" {
		t.Error("Expected the contact embedded in the created visit")
	}
	if visit.ReminderScheduled {
		t.Error("New visits must not have a reminder scheduled")
	}

	// Scheduling against someone else's contact is not-found
	if _, err := services.CreateVisit(db, other.ID, contact.ID, at, ""); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for cross-owner visit, got %v", err)
	}

	visits, err := services.ListVisits(db, user.ID)
	if err != nil {
		t.Fatalf("ListVisits failed: %v", err)
	}
	for i := 1; i < len(visits); i++ {
		if visits[i].Datetime.Before(visits[i-1].Datetime) {
			t.Error("Visits are not in ascending datetime order")
		}
	}

	// The soonest upcoming visit is denormalized onto the contact
	updated, err := services.GetContact(db, user.ID, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if updated.NextAppointment == nil {
		t.Error("Expected next_appointment to be set after scheduling")
	}

	if err := services.DeleteVisit(db, user.ID, visit.ID); err != nil {
		t.Fatalf("DeleteVisit failed: %v", err)
	}
}

func testContactCascadeDelete(t *testing.T, db *gorm.DB) {
	user := helpers.CreateTestUser(t, db, "Cascade", helpers.UniqueEmail("cascade"))
	contact := helpers.CreateTestContact(t, db, user.ID, "Joseph", "Smith", "555-0301")
	helpers.CreateTestNote(t, db, contact.ID, user.ID, "interested in baptism")
	helpers.CreateTestVisit(t, db, user.ID, contact.ID, time.Now().Add(24*time.Hour))

	affected, err := services.DeleteContact(db, user.ID, contact.ID)
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if affected != 3 {
		t.Errorf("Expected 3 rows removed (contact, note, visit), got %d", affected)
	}

	notes, err := services.ListNotes(db, user.ID, contact.ID)
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound listing notes of a deleted contact, got %v (%d notes)", err, len(notes))
	}
}
