// Command client is a terminal stand-in for the real messaging transport.
// It mints a bearer token for one owner, posts typed input to the server as
// actions, and prints the returned display instructions.
//
// Input rules: lines starting with "/" are commands, a bare number presses
// the matching button from the last rendered menu, anything else is sent as
// free text.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/card-keeper-bot/internal/adapter"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/utils"
	"github.com/MKhiriev/card-keeper-bot/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	address := flag.String("a", "http://localhost:8080", "card-keeper server address")
	signKey := flag.String("k", "", "token sign key shared with the server")
	issuer := flag.String("i", "card-keeper", "token issuer claim")
	ownerID := flag.Int64("u", 1, "owner id to act as")
	tokenDuration := flag.Duration("d", 24*time.Hour, "token lifetime")
	flag.Parse()

	log := logger.NewLogger("card-keeper-client")

	if *signKey == "" {
		log.Fatal().Msg("token sign key is required (-k)")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{BaseURL: *address}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	token, err := utils.GenerateJWTToken(*issuer, *ownerID, *tokenDuration, *signKey)
	if err != nil {
		log.Fatal().Err(err).Msg("generate token")
	}
	serverAdapter.SetToken(token.SignedString)

	ctx := context.Background()

	if version, versionErr := serverAdapter.ServerVersion(ctx); versionErr == nil {
		fmt.Printf("Connected to card-keeper server %s as owner %d\n", version, *ownerID)
	} else {
		log.Warn().Err(versionErr).Msg("server version check failed")
	}
	fmt.Println(`Type /start for the menu, /help for commands, or "exit" to quit.`)

	repl(ctx, serverAdapter, log)
}

func repl(ctx context.Context, serverAdapter adapter.ServerAdapter, log *logger.Logger) {
	var lastButtons []models.Button

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		action, err := actionFromInput(line, lastButtons)
		if err != nil {
			fmt.Println(err)
			continue
		}

		instruction, err := serverAdapter.SendAction(ctx, action)
		if err != nil {
			log.Error().Err(err).Msg("send action")
			fmt.Println("Request failed:", err)
			continue
		}

		lastButtons = render(instruction)
	}
}

// actionFromInput maps one line of terminal input to an action. A bare
// number selects a button from the last rendered instruction.
func actionFromInput(line string, lastButtons []models.Button) (models.Action, error) {
	if strings.HasPrefix(line, "/") {
		name, args, _ := strings.Cut(line, " ")
		return models.Command{Name: name, Args: strings.TrimSpace(args)}, nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(lastButtons) {
			return nil, fmt.Errorf("no button %d on the last screen", n)
		}
		return models.ButtonPress{CallbackID: lastButtons[n-1].CallbackID}, nil
	}

	return models.FreeText{Content: line}, nil
}

// render prints an instruction and returns its buttons so the next numeric
// input can press one of them.
func render(instruction models.Instruction) []models.Button {
	switch i := instruction.(type) {
	case models.ShowMenu:
		fmt.Println(i.Title)
		printButtons(i.Buttons)
		return i.Buttons

	case models.ShowRecordList:
		fmt.Println(i.Title)
		for _, summary := range i.Summaries {
			fmt.Printf("  %s •••• %s (expires %s)\n", summary.BankName, summary.Tail, summary.Expiry)
		}
		printButtons(i.Buttons)
		return i.Buttons

	case models.ShowRecordDetail:
		fmt.Printf("Bank: %s\nCard: %s\nExpires: %s\n", i.Record.BankName, i.Record.CardNumber, i.Record.Expiry)
		printButtons(i.Buttons)
		return i.Buttons

	case models.ShowError:
		fmt.Println("Error:", i.Message)
		return nil

	case models.ShowSuccess:
		fmt.Println(i.Message)
		return nil

	default:
		fmt.Printf("Unsupported instruction: %T\n", instruction)
		return nil
	}
}

func printButtons(buttons []models.Button) {
	for n, button := range buttons {
		fmt.Printf("  [%d] %s\n", n+1, button.Label)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
