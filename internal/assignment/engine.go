package assignment

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pois-treasure/poi-backend/internal/pois"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a (user, poi) pair does not exist.
var ErrNotFound = errors.New("assignment not found")

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). A racing insert on uq_user_poi lands here
// and is treated as "already assigned", not a failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// AssignForUser fills the user's per-category quotas from the profile
// rules and returns the complete set of POI ids the user holds for the
// ruled categories.
//
// The operation is idempotent: categories whose quota is already met are
// skipped, and re-running it never creates duplicate rows. When a
// category's inventory is smaller than the quota the user simply gets
// everything available.
func AssignForUser(d *gorm.DB, userID uint, rules profiles.Rules) ([]uint, error) {
	assigned := []uint{}

	for category, needed := range rules {
		if needed <= 0 {
			continue
		}

		// POIs of this category the user already holds, so a retried or
		// partially-completed assignment resumes instead of over-assigning.
		var existing []uint
		err := d.Model(&Assignment{}).
			Joins("JOIN pois ON pois.id = user_poi_assignments.poi_id").
			Where("user_poi_assignments.user_id = ? AND pois.category = ?", userID, category).
			Pluck("user_poi_assignments.poi_id", &existing).Error
		if err != nil {
			return nil, err
		}

		assigned = append(assigned, existing...)

		missing := needed - len(existing)
		if missing <= 0 {
			continue
		}

		// Bounded random draw in the database: K unique ids from the
		// category, minus what the user already holds. Avoids pulling the
		// whole inventory into memory per request.
		candidates := []uint{}
		query := d.Model(&pois.POI{}).Where("category = ?", category)
		if len(existing) > 0 {
			query = query.Where("id NOT IN ?", existing)
		}
		err = query.Order("RANDOM()").Limit(missing).Pluck("id", &candidates).Error
		if err != nil {
			return nil, err
		}

		for _, poiID := range candidates {
			res := d.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "poi_id"}},
				DoNothing: true,
			}).Create(&Assignment{UserID: userID, POIID: poiID})
			if res.Error != nil {
				if isUniqueViolation(res.Error) {
					// Lost a race for this pair; the row exists, move on.
					assigned = append(assigned, poiID)
					continue
				}
				return nil, res.Error
			}
			assigned = append(assigned, poiID)
		}
	}

	return assigned, nil
}

// MarkVisit flips the visited flag for the (user, poi) pair. The flag and
// its timestamp change in one UPDATE: visiting stamps visited_at with the
// server clock, un-visiting clears it — never one without the other.
func MarkVisit(d *gorm.DB, userID, poiID uint, visited bool) error {
	updates := map[string]interface{}{
		"visited":    visited,
		"visited_at": nil,
	}
	if visited {
		updates["visited_at"] = gorm.Expr("NOW()")
	}

	res := d.Model(&Assignment{}).
		Where("user_id = ? AND poi_id = ?", userID, poiID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForUser returns the user's assignments with their POIs loaded.
func ListForUser(d *gorm.DB, userID uint) ([]Assignment, error) {
	var list []Assignment
	err := d.Preload("POI").
		Where("user_id = ?", userID).
		Order("assigned_at").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
