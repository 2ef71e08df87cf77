package suggest

import (
	"log/slog"
	"time"

	"github.com/mkoskela/liftapp/internal/errors"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

const dateFormat = time.DateOnly
const timestampFormat = "2006-01-02T15:04:05.000Z"

// Sentinel errors surfaced to callers. Everything else a repository returns
// is wrapped query plumbing.
var (
	// ErrNotFound marks a lookup that matched no rows.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrNotAuthenticated marks an operation invoked without a signed-in user.
	ErrNotAuthenticated = errors.NewSentinel("not authenticated")
	// ErrNoCandidates marks a suggestion run where filtering emptied the
	// exercise pool.
	ErrNoCandidates = errors.NewSentinel("no exercises available after filtering")
)

// baseRepository carries the shared database handle for the typed repositories.
type baseRepository struct {
	db *sqlite.Database
}

func newBaseRepository(db *sqlite.Database) baseRepository {
	return baseRepository{db: db}
}

// repository aggregates the typed repositories behind the service.
type repository struct {
	exercises *sqliteExerciseRepository
	sessions  *sqliteSessionRepository
	prefs     *sqlitePreferenceRepository
	profile   *sqliteProfileRepository
	equipment *sqliteEquipmentRepository
	injuries  *sqliteInjuryRepository
}

// repositoryFactory wires typed repositories to a shared database handle.
type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		exercises: newSQLiteExerciseRepository(f.db),
		sessions:  newSQLiteSessionRepository(f.db),
		prefs:     newSQLitePreferenceRepository(f.db),
		profile:   newSQLiteProfileRepository(f.db),
		equipment: newSQLiteEquipmentRepository(f.db),
		injuries:  newSQLiteInjuryRepository(f.db, f.logger),
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}
