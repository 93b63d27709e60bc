// Command passkey-demo runs the biometric login flow end to end against the
// in-process software authenticator: it registers a passkey, signs in with
// it, and renders the mock banking dashboard.
package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/aegisbank/passkey"
	"github.com/aegisbank/passkey/authenticator/softtoken"
	"github.com/aegisbank/passkey/bankmock"
	"github.com/aegisbank/passkey/uistate"
)

func main() {
	username := flag.String("username", "demo", "account username to register and sign in with")
	flag.Parse()

	cfg := passkey.LoadConfigFromEnv()

	token, err := softtoken.New(cfg.Origin)
	if err != nil {
		log.Fatalf("create software authenticator: %v", err)
	}
	client := passkey.NewClient(token, cfg)
	machine := uistate.New()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	log.Printf("registering passkey for %q (touch the sensor)", *username)
	mustApply(machine, uistate.CeremonyStarted{})
	registration := client.Register(ctx, *username)
	if !registration.Success {
		fail(machine, registration.Err)
	}
	mustApply(machine, uistate.CeremonySucceeded{})
	log.Printf("passkey created: %s", registration.Credential.ID)
	settle(machine)

	log.Printf("signing in as %q", *username)
	mustApply(machine, uistate.CeremonyStarted{})
	login := client.Authenticate(ctx, *username)
	if !login.Success {
		fail(machine, login.Err)
	}
	mustApply(machine, uistate.CeremonySucceeded{})
	log.Printf("signed in with credential %s", login.Assertion.ID)

	render(bankmock.Generate(newRand(), *username, time.Now()))
	settle(machine)
}

// fail surfaces the translated ceremony error, lets the error state show for
// its revert delay, and exits.
func fail(machine *uistate.Machine, err error) {
	mustApply(machine, uistate.CeremonyFailed{Message: passkey.UserMessage(err)})
	log.Printf("login screen: %s", machine.Message())
	settle(machine)
	os.Exit(1)
}

// settle holds the terminal state for the revert delay, then returns the
// screen to idle.
func settle(machine *uistate.Machine) {
	timer := time.NewTimer(uistate.RevertDelay)
	<-timer.C
	mustApply(machine, uistate.TimerElapsed{})
}

func mustApply(machine *uistate.Machine, event uistate.Event) {
	if err := machine.Apply(event); err != nil {
		log.Fatalf("login screen state: %v", err)
	}
}

func render(dash bankmock.Dashboard) {
	fmt.Printf("\nWelcome back, %s\n\n", dash.Owner)
	for _, account := range dash.Accounts {
		fmt.Printf("  %-20s %s  $%s\n", account.Name, account.Number, account.Balance.StringFixed(2))
	}
	fmt.Println("\nRecent transactions")
	for _, tx := range dash.Transactions {
		fmt.Printf("  %s  %-20s %-14s $%s\n",
			tx.PostedAt.Format("Jan 02"), tx.Merchant, tx.Category, tx.Amount.StringFixed(2))
	}
	fmt.Println()
}

// newRand seeds a PRNG from crypto/rand so the dashboard differs per run.
func newRand() *rand.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}
