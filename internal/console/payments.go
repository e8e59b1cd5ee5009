package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/travel-manager/internal/payment"
)

var serviceTypes = []string{"flight", "hotel", "experience"}

// PaymentsMenu is the standalone blockchain payments console: token list,
// payments, history, loyalty points and balances over a payment channel.
type PaymentsMenu struct {
	p        *Prompter
	ch       payment.Channel
	tokens   *payment.TokenRegistry
	services *payment.ServiceRegistry
}

// NewPaymentsMenu returns a payments console over ch.
func NewPaymentsMenu(p *Prompter, ch payment.Channel, tokens *payment.TokenRegistry, services *payment.ServiceRegistry) *PaymentsMenu {
	return &PaymentsMenu{p: p, ch: ch, tokens: tokens, services: services}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Failed operations are reported and the menu is shown again.
func (m *PaymentsMenu) Run(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("Travel Manager - Blockchain Payments"))
	fmt.Fprintf(out, "Wallet: %s (%s)\n", m.ch.Address(), m.tokens.Network)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(out, "\nWhat would you like to do?")
		fmt.Fprintln(out, "1. View available payment tokens")
		fmt.Fprintln(out, "2. Make a payment for travel services")
		fmt.Fprintln(out, "3. View payment history")
		fmt.Fprintln(out, "4. View loyalty points")
		fmt.Fprintln(out, "5. Redeem loyalty points")
		fmt.Fprintln(out, "6. View wallet balances")
		fmt.Fprintln(out, "7. Exit")

		choice, err := m.p.Ask("Enter your choice (1-7)")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			m.viewTokens()
		case "2":
			err = m.makePayment(ctx)
		case "3":
			err = m.viewHistory(ctx)
		case "4":
			err = m.viewLoyalty(ctx)
		case "5":
			err = m.redeem(ctx)
		case "6":
			err = m.viewBalances(ctx)
		case "7":
			fmt.Fprintln(out, "Thank you for using Travel Manager blockchain payments!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice. Please try again.")
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(out, "Operation failed: %v\n", err)
		}
	}
}

func (m *PaymentsMenu) viewTokens() {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nAvailable Payment Tokens:"))
	for i, sym := range m.tokens.Symbols() {
		addr, err := m.tokens.Address(sym)
		status := "Supported"
		if err != nil {
			status = "Not supported"
		}
		fmt.Fprintf(out, "%d. %s\n   Address: %s\n   Status: %s\n", i+1, sym, addr, status)
	}
}

func (m *PaymentsMenu) makePayment(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nMake a Payment for Travel Services"))

	balances, err := m.ch.GetWalletBalance(ctx)
	if err != nil {
		return err
	}
	symbols := m.tokens.Symbols()
	for i, sym := range symbols {
		fmt.Fprintf(out, "%d. %s - Balance: %s\n", i+1, sym, balances[sym])
	}
	ti, ok, err := m.p.choose("Select token to pay with (number)", len(symbols))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Invalid token selection.")
		return nil
	}
	token := symbols[ti]

	fmt.Fprintln(out, "\nService types:")
	for i, st := range serviceTypes {
		fmt.Fprintf(out, "%d. %s\n", i+1, strings.ToUpper(st[:1])+st[1:])
	}
	si, ok, err := m.p.choose("Select service type (number)", len(serviceTypes))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Invalid service type.")
		return nil
	}
	service := serviceTypes[si]

	raw, err := m.p.Ask(fmt.Sprintf("Enter amount to pay in %s", token))
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		fmt.Fprintln(out, "Invalid amount.")
		return nil
	}

	recipient, err := m.p.Ask("Enter recipient address (leave empty for the default provider)")
	if err != nil {
		return err
	}
	if recipient == "" {
		recipient = m.services.RecipientFor(service)
	}

	fmt.Fprintf(out, "\nPayment Details:\nToken: %s\nAmount: %s\nService Type: %s\nRecipient: %s\n",
		token, payment.FormatAmount(amount), service, recipient)
	ok, err = m.p.Confirm("Confirm payment?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Payment cancelled.")
		return nil
	}

	tx, err := m.ch.ProcessPayment(ctx, token, amount, service, recipient)
	if err != nil {
		fmt.Fprintf(out, "Payment failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "Payment successful!\nTransaction Hash: %s\n", tx)
	return nil
}

func (m *PaymentsMenu) viewHistory(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nPayment History"))
	history, err := m.ch.PaymentHistory(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(out, "No payments found.")
		return nil
	}
	for i, p := range history {
		status := "Completed"
		if p.Refunded {
			status = "Refunded"
		}
		fmt.Fprintf(out, "%d. Payment ID: %s\n   Amount: %s %s\n   Service Type: %s\n   Timestamp: %s\n   Status: %s\n",
			i+1, p.ID, payment.FormatAmount(p.Amount), p.Token, p.ServiceType,
			p.Timestamp.Format("2006-01-02 15:04:05"), status)
	}
	return nil
}

func (m *PaymentsMenu) viewLoyalty(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nLoyalty Points"))
	points, err := m.ch.GetLoyaltyPoints(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Current Points: %d\n", points)
	fmt.Fprintf(out, "Conversion Rate: %d points = 1 ULT token\n", payment.PointsPerULT)
	fmt.Fprintf(out, "Equivalent ULT Tokens: %s\n", payment.FormatAmount(float64(points)/payment.PointsPerULT))
	return nil
}

func (m *PaymentsMenu) redeem(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nRedeem Loyalty Points"))
	points, err := m.ch.GetLoyaltyPoints(ctx)
	if err != nil {
		return err
	}
	if points == 0 {
		fmt.Fprintln(out, "You don't have any loyalty points to redeem.")
		return nil
	}

	n, ok, err := m.p.AskInt(fmt.Sprintf("You have %d points. How many points would you like to redeem?", points))
	if err != nil {
		return err
	}
	if !ok || n <= 0 || n > points {
		fmt.Fprintln(out, "Invalid points amount.")
		return nil
	}

	symbols := m.tokens.Symbols()
	fmt.Fprintln(out, "\nAvailable tokens to receive:")
	for i, sym := range symbols {
		fmt.Fprintf(out, "%d. %s\n", i+1, sym)
	}
	ti, ok, err := m.p.choose("Select token to receive (number)", len(symbols))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Invalid token selection.")
		return nil
	}

	fmt.Fprintf(out, "\nRedemption Details:\nPoints to Redeem: %d\nToken to Receive: %s\n", n, symbols[ti])
	ok, err = m.p.Confirm("Confirm redemption?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Redemption cancelled.")
		return nil
	}

	tx, err := m.ch.RedeemLoyaltyPoints(ctx, n, symbols[ti])
	if err != nil {
		fmt.Fprintf(out, "Redemption failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "Redemption successful!\nTransaction Hash: %s\n", tx)
	return nil
}

func (m *PaymentsMenu) viewBalances(ctx context.Context) error {
	out := m.p.Out()
	fmt.Fprintln(out, heading("\nWallet Balances"))
	balances, err := m.ch.GetWalletBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wallet Address: %s\n", m.ch.Address())
	for _, sym := range m.tokens.Symbols() {
		fmt.Fprintf(out, "%s: %s\n", sym, balances[sym])
	}
	return nil
}
