// Command numdemo is the thin driver around this module's numeric
// kernels: it can run the interactive bit-pattern explorer, start the
// HTTP+websocket evaluation server, or evaluate a single expression
// and print the result, all configured from the same number-profile
// config.Config the config package loads.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bitforms/numeric/apiserver"
	"github.com/bitforms/numeric/config"
	"github.com/bitforms/numeric/explorer"
)

// Version information, overridable at build time with
// -ldflags "-X main.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		tuiMode     = flag.Bool("tui", false, "Start the interactive bit-pattern explorer")
		apiMode     = flag.Bool("api-server", false, "Start the HTTP+websocket evaluation server")
		apiPort     = flag.Int("port", 0, "Evaluation server port (used with -api-server; 0 uses the config default)")
		policy      = flag.String("policy", "", "cfloat policy: ieee, standard, extended, saturating (default: config profile)")
		nbits       = flag.Int("nbits", 0, "total bit width (default: config profile)")
		es          = flag.Int("es", 0, "exponent bit width (default: config profile)")
		expr        = flag.String("set", "0", "initial decimal value for -tui, or the first operand otherwise")
		op          = flag.String("op", "", "operator to apply to -set and -operand: add, mul")
		operand     = flag.Float64("operand", 0, "second operand for -op")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("numeric %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	policyName := firstNonEmpty(*policy, policyFromConfig(cfg))
	shapeBits := firstNonZero(*nbits, cfg.Format.Bits)
	shapeES := firstNonZero(*es, cfg.Format.ExpBits)
	port := firstNonZero(*apiPort, cfg.Server.Port)

	switch {
	case *apiMode:
		runAPIServer(port)
	case *tuiMode:
		runExplorer(policyName, shapeBits, shapeES, *expr)
	default:
		runEvaluate(policyName, shapeBits, shapeES, *expr, *op, *operand)
	}
}

func policyFromConfig(cfg *config.Config) string {
	switch {
	case cfg.Policy.Saturating:
		return "saturating"
	case cfg.Policy.Subnormals && cfg.Policy.Supernormals:
		return "extended"
	case cfg.Policy.Subnormals:
		return "ieee"
	default:
		return "standard"
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func runExplorer(policyName string, nbits, es int, initial string) {
	session, err := explorer.NewSession(policyName, nbits, es)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting explorer: %v\n", err)
		os.Exit(1)
	}
	if initial != "" && initial != "0" {
		if err := session.ExecuteCommand("set " + initial); err != nil {
			fmt.Fprintf(os.Stderr, "set %s: %v\n", initial, err)
			os.Exit(1)
		}
		session.GetOutput()
	}

	tui := explorer.NewTUI(session)
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "explorer error: %v\n", err)
		os.Exit(1)
	}
}

func runAPIServer(port int) {
	server := apiserver.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nshutting down apiserver...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		})
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "apiserver error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	shutdown()
}

func runEvaluate(policyName string, nbits, es int, first, op string, operand float64) {
	session, err := explorer.NewSession(policyName, nbits, es)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting evaluator: %v\n", err)
		os.Exit(1)
	}
	if err := session.ExecuteCommand("set " + first); err != nil {
		fmt.Fprintf(os.Stderr, "set %s: %v\n", first, err)
		os.Exit(1)
	}
	session.GetOutput()

	if op != "" {
		if err := session.ExecuteCommand(fmt.Sprintf("%s %v", op, operand)); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v: %v\n", op, operand, err)
			os.Exit(1)
		}
	}
	fmt.Print(session.GetOutput())
	if op == "" {
		fmt.Printf("value   : %s\n", session.Current.String())
		fmt.Printf("shape   : cfloat<%d,%d> policy=%s\n", session.Current.NBits(), session.Current.ES(), session.Current.PolicyName())
		fmt.Printf("bits    : %s\n", session.Current.Binary())
	}
}
