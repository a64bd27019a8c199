package main

import (
	"context"
	"log"
	"os"
	"strings"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/cli"
	"github.com/robiweb74/makupovalni-seznam/internal/share"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.WarnLevel}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	args := rewriteShareLinkArgs(os.Args)
	root := cli.NewRootCmd()
	root.SetArgs(args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// rewriteShareLinkArgs makes `seznam <share-link>` behave like
// `seznam import <share-link>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so the first positional token
// is searched for rather than argv[1].
func rewriteShareLinkArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--dir":    true,
		"--config": true,
		"--format": true,
	}

	insertImport := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "import")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && share.LooksLikeLink(argv[i+1]) {
				return insertImport(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if share.LooksLikeLink(a) {
			return insertImport(i)
		}
		return argv
	}
	return argv
}
