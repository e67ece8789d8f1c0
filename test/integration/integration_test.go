package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

func TestFeatures(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		runSuite(t, func() (storage.Storage, func(), error) {
			return storage.NewMemory(), func() {}, nil
		})
	})

	t.Run("file", func(t *testing.T) {
		runSuite(t, fileSlot)
	})

	t.Run("postgres", func(t *testing.T) {
		// Skip if not running integration tests
		if os.Getenv("INTEGRATION_TEST") == "" {
			t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize test containers
		tc, err := NewTestContext(ctx)
		if err != nil {
			t.Fatalf("Failed to create test context: %v", err)
		}
		defer tc.Close(ctx)

		runSuite(t, tc.Slot)
	})
}

func runSuite(t *testing.T, newSlot SlotFactory) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps := NewStepsContext(newSlot)
			steps.RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("Non-zero status returned, failed to run feature tests")
	}
}
