package assignment_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pois-treasure/poi-backend/internal/assignment"
	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/pois"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"github.com/pois-treasure/poi-backend/internal/users"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	profiles.Init()
	pois.Init()
	users.Init()
	assignment.Init()

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

// uniqueCategory returns a category name no other test run shares, so
// inventory counts are deterministic even against a dirty database.
func uniqueCategory(t *testing.T, prefix string) string {
	t.Helper()
	return fmt.Sprintf("%s_%s", prefix, uuid.New().String()[:8])
}

// createTestPOIs inserts n POIs of the category and registers cleanup.
func createTestPOIs(t *testing.T, category string, n int) []uint {
	t.Helper()
	requireDB(t)

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		poi := pois.POI{
			Name:        fmt.Sprintf("test poi %s %d", category, i),
			Category:    category,
			WKTGeometry: fmt.Sprintf("POINT (%d %d)", i, i),
		}
		if err := db.DB.Create(&poi).Error; err != nil {
			t.Fatalf("failed to create test poi: %v", err)
		}
		ids = append(ids, poi.ID)
	}

	t.Cleanup(func() {
		db.DB.Where("category = ?", category).Delete(&pois.POI{})
	})
	return ids
}

// createTestUser inserts a user under a throwaway profile and registers
// cleanup for the user, its assignments and the profile.
func createTestUser(t *testing.T, rules profiles.Rules) users.User {
	t.Helper()
	requireDB(t)

	profile := profiles.Profile{
		Name:  fmt.Sprintf("test_profile_%s", uuid.New().String()[:8]),
		Rules: rules,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	user := users.User{
		Username:  fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		UUID:      uuid.New().String(),
		ProfileID: profile.ID,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", user.ID).Delete(&assignment.Assignment{})
		db.DB.Delete(&users.User{}, user.ID)
		db.DB.Delete(&profiles.Profile{}, profile.ID)
	})
	return user
}

func asSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// TestAssignForUser_QuotaAndPartialInventory covers the core scenario:
// rules {park: 2, cafe: 1} against 3 parks and 0 cafes yields exactly 2
// assignments, both parks.
func TestAssignForUser_QuotaAndPartialInventory(t *testing.T) {
	requireDB(t)

	park := uniqueCategory(t, "park")
	cafe := uniqueCategory(t, "cafe")
	parkIDs := createTestPOIs(t, park, 3)
	rules := profiles.Rules{park: 2, cafe: 1}
	user := createTestUser(t, rules)

	assigned, err := assignment.AssignForUser(db.DB, user.ID, rules)
	if err != nil {
		t.Fatalf("AssignForUser: %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assigned POIs, got %d: %v", len(assigned), assigned)
	}

	parkSet := asSet(parkIDs)
	seen := asSet(assigned)
	if len(seen) != 2 {
		t.Errorf("assigned ids must be distinct, got %v", assigned)
	}
	for id := range seen {
		if _, ok := parkSet[id]; !ok {
			t.Errorf("assigned POI %d is not one of the park inventory %v", id, parkIDs)
		}
	}
}

// TestAssignForUser_Idempotent verifies a second call performs no extra
// writes and returns the same assigned set.
func TestAssignForUser_Idempotent(t *testing.T) {
	requireDB(t)

	category := uniqueCategory(t, "plaza")
	createTestPOIs(t, category, 5)
	rules := profiles.Rules{category: 3}
	user := createTestUser(t, rules)

	first, err := assignment.AssignForUser(db.DB, user.ID, rules)
	if err != nil {
		t.Fatalf("first AssignForUser: %v", err)
	}
	second, err := assignment.AssignForUser(db.DB, user.ID, rules)
	if err != nil {
		t.Fatalf("second AssignForUser: %v", err)
	}

	firstSet, secondSet := asSet(first), asSet(second)
	if len(firstSet) != 3 || len(secondSet) != 3 {
		t.Fatalf("expected 3 distinct ids both times, got %d and %d", len(firstSet), len(secondSet))
	}
	for id := range firstSet {
		if _, ok := secondSet[id]; !ok {
			t.Errorf("second call lost POI %d from the assigned set", id)
		}
	}

	var count int64
	db.DB.Model(&assignment.Assignment{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 3 {
		t.Errorf("expected exactly 3 assignment rows, got %d", count)
	}
}

// TestAssignForUser_ResumesPartial verifies a pre-existing assignment
// counts toward the quota and only the shortfall is drawn.
func TestAssignForUser_ResumesPartial(t *testing.T) {
	requireDB(t)

	category := uniqueCategory(t, "market")
	ids := createTestPOIs(t, category, 4)
	rules := profiles.Rules{category: 2}
	user := createTestUser(t, rules)

	if err := db.DB.Create(&assignment.Assignment{UserID: user.ID, POIID: ids[0]}).Error; err != nil {
		t.Fatalf("failed to pre-assign: %v", err)
	}

	assigned, err := assignment.AssignForUser(db.DB, user.ID, rules)
	if err != nil {
		t.Fatalf("AssignForUser: %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assigned POIs after resume, got %v", assigned)
	}
	if _, ok := asSet(assigned)[ids[0]]; !ok {
		t.Errorf("pre-assigned POI %d missing from result %v", ids[0], assigned)
	}
}

// TestAssignForUser_NonPositiveQuota verifies zero and negative quotas
// assign nothing and are not an error.
func TestAssignForUser_NonPositiveQuota(t *testing.T) {
	requireDB(t)

	category := uniqueCategory(t, "bridge")
	createTestPOIs(t, category, 2)
	rules := profiles.Rules{category: -1}
	user := createTestUser(t, rules)

	assigned, err := assignment.AssignForUser(db.DB, user.ID, rules)
	if err != nil {
		t.Fatalf("AssignForUser: %v", err)
	}
	if len(assigned) != 0 {
		t.Errorf("expected no assignments for negative quota, got %v", assigned)
	}
}

// TestMarkVisit verifies the flag and timestamp move together in both
// directions, and an unknown pair reports ErrNotFound.
func TestMarkVisit(t *testing.T) {
	requireDB(t)

	category := uniqueCategory(t, "fountain")
	ids := createTestPOIs(t, category, 1)
	rules := profiles.Rules{category: 1}
	user := createTestUser(t, rules)

	if _, err := assignment.AssignForUser(db.DB, user.ID, rules); err != nil {
		t.Fatalf("AssignForUser: %v", err)
	}

	if err := assignment.MarkVisit(db.DB, user.ID, ids[0], true); err != nil {
		t.Fatalf("MarkVisit(true): %v", err)
	}
	var row assignment.Assignment
	if err := db.DB.First(&row, "user_id = ? AND poi_id = ?", user.ID, ids[0]).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if !row.Visited || row.VisitedAt == nil {
		t.Errorf("after visiting: visited=%v visited_at=%v, want true and non-null", row.Visited, row.VisitedAt)
	}

	if err := assignment.MarkVisit(db.DB, user.ID, ids[0], false); err != nil {
		t.Fatalf("MarkVisit(false): %v", err)
	}
	var cleared assignment.Assignment
	if err := db.DB.First(&cleared, "user_id = ? AND poi_id = ?", user.ID, ids[0]).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if cleared.Visited || cleared.VisitedAt != nil {
		t.Errorf("after un-visiting: visited=%v visited_at=%v, want false and null", cleared.Visited, cleared.VisitedAt)
	}

	err := assignment.MarkVisit(db.DB, user.ID, 999999999, true)
	if !errors.Is(err, assignment.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown pair, got %v", err)
	}
}
