package recorder

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hexwheel/maze-navigator/internal/mazefile"
)

// Clock returns the current time, injected so artifact timestamps are
// reproducible in tests.
type Clock func() time.Time

// LoadDotEnv loads a .env file into the process environment if one is
// present at path, mirroring the CLI's own best-effort .env loading. A
// missing file is not an error; any other read failure is returned so
// the caller can decide whether to proceed.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// CollectMeta reads GIT_AUTHOR_NAME, GIT_AUTHOR_EMAIL, and GITHUB_PROFILE
// from the environment and stamps the current time via now, matching the
// session metadata the map editor collects non-interactively.
func CollectMeta(now Clock) mazefile.Meta {
	return mazefile.Meta{
		Name:   os.Getenv("GIT_AUTHOR_NAME"),
		Email:  os.Getenv("GIT_AUTHOR_EMAIL"),
		GitHub: os.Getenv("GITHUB_PROFILE"),
		Date:   now().Format("2006-01-02T15:04:05Z07:00"),
	}
}
