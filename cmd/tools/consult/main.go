// Command consult runs the funnel in a terminal, one line per message.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/app"
	"github.com/sarahkali/oracle/backend/internal/config"
)

func main() {
	user := flag.String("user", "", "session id, generated when empty")
	timeout := flag.Duration("timeout", 45*time.Second, "per-message timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	app.SetupLogging(cfg.Server)
	// the console is for the conversation
	logrus.SetLevel(logrus.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize services")
	}
	defer a.Close()

	sessionID := *user
	if sessionID == "" {
		sessionID = fmt.Sprintf("console-%d", time.Now().UnixNano())
	}

	fmt.Printf("%s (%s). Ctrl+D para sair.\n\n", a.Persona.Name, sessionID)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		msgCtx, cancel := context.WithTimeout(ctx, *timeout)
		reply := a.Processor.Converse(msgCtx, sessionID, text)
		cancel()

		fmt.Printf("\n%s\n\n[%s]\n", reply, a.Processor.Session(sessionID).Stage)
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Println()
}
