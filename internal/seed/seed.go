package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// CreateDefaultData creates the configured default courses if they don't
// exist. Courses already present are left untouched; other failures are
// collected and returned together after every course has been tried.
func CreateDefaultData(ctx context.Context, courseRepo repositories.CourseRepository, courses []config.SeedCourse, lgr zerolog.Logger) error {
	lgr.Info().Int("courses", len(courses)).Msg("Checking/Creating default courses...")
	var finalErr error

	created := 0
	for _, course := range courses {
		name := strings.TrimSpace(course.Name)
		if name == "" {
			continue
		}

		var description *string
		if d := strings.TrimSpace(course.Description); d != "" {
			description = &d
		}

		_, err := courseRepo.Create(ctx, name, description)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrCourseAlreadyExists):
			lgr.Debug().Str("course", name).Msg("Default course already exists")
		default:
			lgr.Error().Err(err).Str("course", name).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("created", created).Msg("Default data check complete.")
	return finalErr
}
