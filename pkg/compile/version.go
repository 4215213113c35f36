package compile

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
)

// Set with -ldflags "-X github.com/play/mighty/pkg/compile.Version=..."
var (
	Name      = "mighty"
	Hostname  = ""
	Version   = "dev"
	GoVersion = runtime.Version()
	GoOs      = runtime.GOOS
	GoArch    = runtime.GOARCH
	GitCommit = ""
	BuildTime = ""
)

func init() {
	Hostname, _ = os.Hostname()
}

func Os() string {
	return fmt.Sprintf("%s/%s", GoOs, GoArch)
}

func Log() {
	log.Info().
		Str("name", Name).
		Str("host", Hostname).
		Str("version", Version).
		Str("go_version", GoVersion).
		Str("os", Os()).
		Str("commit", GitCommit).
		Str("build_time", BuildTime).
		Msg("build info")
}
