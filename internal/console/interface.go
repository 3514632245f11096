package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"xpath-finder/internal/config"
	"xpath-finder/internal/entity"
	"xpath-finder/internal/usecase"
	"xpath-finder/pkg/logg"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Interface struct {
	config   *config.Config
	logger   *zap.Logger
	usecase  *usecase.Service
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	return &Interface{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase:  params.Usecase,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  sigChan,
		stopping: false,
	}
}

func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	signal.Notify(i.sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-i.sigChan
		fmt.Println("\n\nInterrupt received, stopping...")
		i.stopping = true
		i.Stop()
	}()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if i.stopping {
			break
		}

		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		fields := strings.Fields(input)
		command := strings.ToLower(fields[0])

		switch command {
		case "find":
			i.handleFind(fields[1:])
		case "batch":
			i.handleBatch(fields[1:])
		case "sessions":
			i.handleSessions()
		case "help":
			i.printHelp()
		case "exit", "quit":
			i.stopping = true
		default:
			fmt.Printf("Unknown command: %s (type 'help')\n", command)
		}
	}

	return scanner.Err()
}

func (i *Interface) Stop() error {
	i.cancel()

	return nil
}

// handleFind runs a single discovery: find <url> <hint words...>
// [type=<tag>] [top=<n>].
func (i *Interface) handleFind(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: find <url> <hint...> [type=<tag>] [top=<n>]")

		return
	}

	url := args[0]
	elementType := "*"
	resultCount := i.config.FinderConfig.DefaultResultCount

	var hintParts []string
	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "type="):
			elementType = strings.TrimPrefix(arg, "type=")
		case strings.HasPrefix(arg, "top="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "top=")); err == nil && n > 0 {
				resultCount = n
			}
		default:
			hintParts = append(hintParts, arg)
		}
	}

	hint := strings.Join(hintParts, " ")

	candidates, err := i.usecase.Finder.FindLocator(i.ctx, url, hint, elementType, resultCount)
	if err != nil {
		i.logger.Error("Discovery failed", zap.Error(err))
		fmt.Printf("Error: %v\n", err)

		return
	}

	printCandidates(hint, candidates)
}

// handleBatch discovers many hints against one page:
// batch <url> <hint;hint;...>
func (i *Interface) handleBatch(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: batch <url> <hint;hint;...>")

		return
	}

	url := args[0]
	hints := []string{}

	for _, part := range strings.Split(strings.Join(args[1:], " "), ";") {
		if hint := strings.TrimSpace(part); hint != "" {
			hints = append(hints, hint)
		}
	}

	if len(hints) == 0 {
		fmt.Println("No hints supplied")

		return
	}

	results, err := i.usecase.Finder.FindLocators(i.ctx, url, hints, i.config.FinderConfig.BatchResultCount)
	if err != nil {
		i.logger.Error("Batch discovery failed", zap.Error(err))
		fmt.Printf("Error: %v\n", err)

		return
	}

	for _, hint := range hints {
		printCandidates(hint, results[hint])
	}
}

func (i *Interface) handleSessions() {
	sessions := i.usecase.Browser.Sessions()
	if len(sessions) == 0 {
		fmt.Println("No page sessions yet")

		return
	}

	for _, s := range sessions {
		source := "live"
		if s.FromCache {
			source = "cache"
		}

		fmt.Printf("  %s  (%s, loaded %s)\n", s.URL, source, s.LoadedAt.Format("15:04:05"))
	}
}

func printCandidates(hint string, candidates []entity.Candidate) {
	fmt.Printf("\nHint: %q\n", hint)

	if len(candidates) == 0 {
		fmt.Println("  No candidates found")

		return
	}

	for _, c := range candidates {
		fmt.Printf("  #%d  %.3f  %s\n", c.Rank, c.Confidence, c.Locator)
		fmt.Printf("       tag=%s matches=%d strategy=%s\n", c.Tag, c.MatchCount, c.Strategy)

		if c.Text != "" {
			text := c.Text
			if len(text) > 60 {
				text = text[:60] + "..."
			}
			fmt.Printf("       text=%q\n", text)
		}

		if c.CSS != "" {
			fmt.Printf("       css=%s\n", c.CSS)
		}
	}
}

func (i *Interface) printBanner() {
	fmt.Println("==============================================")
	fmt.Println("  XPath Finder - locator discovery console")
	fmt.Println("==============================================")
}

func (i *Interface) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  find <url> <hint...> [type=<tag>] [top=<n>]   discover locators for one hint")
	fmt.Println("  batch <url> <hint;hint;...>                   discover locators for many hints")
	fmt.Println("  sessions                                      list cached page sessions")
	fmt.Println("  help                                          show this help")
	fmt.Println("  exit                                          quit")
}
