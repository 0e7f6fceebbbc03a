package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const fixtureDateLayout = "2006-01-02"

// statusPath lists the moves after in_progress that reach a fixture status.
var statusPath = map[string][]string{
	"closing":   {"closing"},
	"completed": {"closing", "completed"},
	"cancelled": {"cancelled"},
}

// Fixture is the YAML document read by "ct_admin seed".
type Fixture struct {
	Transactions []FixtureTransaction `yaml:"transactions"`
}

// FixtureTransaction is one deal and the tracker rows opened with it.
type FixtureTransaction struct {
	OfferID          string            `yaml:"offerID"`
	ListingID        string            `yaml:"listingID"`
	BuyerID          string            `yaml:"buyerID"`
	SellerID         string            `yaml:"sellerID"`
	Type             string            `yaml:"type"`
	TotalValue       string            `yaml:"totalValue"`
	Currency         string            `yaml:"currency"`
	ClosingDate      string            `yaml:"closingDate"`
	RequiresApproval bool              `yaml:"requiresApproval"`
	// Status defaults to in_progress; checklist, key dates and payments need an open transaction.
	Status           string            `yaml:"status"`
	Parties          []FixtureParty    `yaml:"parties"`
	Checklist        []FixtureItem     `yaml:"checklist"`
	KeyDates         []FixtureKeyDate  `yaml:"keyDates"`
	Payments         []FixturePayment  `yaml:"payments"`
	Structure        *FixtureStructure `yaml:"paymentStructure"`
}

type FixtureParty struct {
	UserID string `yaml:"userID"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Email  string `yaml:"email"`
}

type FixtureStructure struct {
	Cash     string `yaml:"cash"`
	Financed string `yaml:"financed"`
	Earnout  string `yaml:"earnout"`
}

// FixtureItem is a closing checklist row. DependsOn names earlier items by title.
type FixtureItem struct {
	Category         string   `yaml:"category"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Priority         string   `yaml:"priority"`
	AssignedTo       string   `yaml:"assignedTo"`
	ResponsibleParty string   `yaml:"responsibleParty"`
	DueDate          string   `yaml:"dueDate"`
	Required         bool     `yaml:"required"`
	DependsOn        []string `yaml:"dependsOn"`
}

type FixtureKeyDate struct {
	Name             string `yaml:"name"`
	Date             string `yaml:"date"`
	Type             string `yaml:"type"`
	ResponsibleParty string `yaml:"responsibleParty"`
	Critical         bool   `yaml:"critical"`
	Description      string `yaml:"description"`
}

type FixturePayment struct {
	Type        string `yaml:"type"`
	Amount      string `yaml:"amount"`
	DueDate     string `yaml:"dueDate"`
	FromParty   string `yaml:"fromParty"`
	ToParty     string `yaml:"toParty"`
	Description string `yaml:"description"`
}

// ParseFixture decodes a fixture and rejects unknown keys.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	if len(fx.Transactions) == 0 {
		return nil, fmt.Errorf("invalid fixture: no transactions")
	}
	return &fx, nil
}

func (c *CLI) newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load transactions from a YAML fixture",
		Long: `Creates every transaction in the fixture together with its checklist,
key dates and scheduled payments. Checklist dependencies refer to
earlier items of the same transaction by title.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return usageError{err}
			}
			fx, err := ParseFixture(data)
			if err != nil {
				return usageError{err}
			}

			ctx := c.adminContext(cmd.Context())
			rt, err := c.openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			ids, err := SeedFixture(ctx, rt.Services, fx, c.actor)
			for i, id := range ids {
				c.printf("Created transaction %s for offer %s\n", id, fx.Transactions[i].OfferID)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "fixture file path")
	return cmd
}

// SeedFixture creates the fixture's transactions in order and returns their ids.
// It stops at the first failure; transactions created before it are kept.
func SeedFixture(ctx context.Context, svc *portssvc.ServiceContainer, fx *Fixture, actor string) ([]string, error) {
	validate := dto.NewValidator()
	validate.SetTagName("binding")

	var ids []string
	for i, ft := range fx.Transactions {
		id, err := seedTransaction(ctx, svc, validate, ft, actor)
		if err != nil {
			return ids, fmt.Errorf("transaction %d (offer %q): %w", i+1, ft.OfferID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedTransaction(ctx context.Context, svc *portssvc.ServiceContainer, validate *validator.Validate, ft FixtureTransaction, actor string) (string, error) {
	status := ft.Status
	if status == "" {
		status = "in_progress"
	}
	if _, ok := statusPath[status]; !ok && status != "pending" && status != "in_progress" {
		return "", fmt.Errorf("unknown fixture status %q", status)
	}
	req, err := ft.createRequest()
	if err != nil {
		return "", err
	}
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	created, err := svc.Transaction.CreateTransaction(ctx, req, actor)
	if err != nil {
		return "", err
	}
	txnID := created.Data.TransactionID

	if status != "pending" {
		if _, err := svc.Transaction.UpdateStatus(ctx, txnID, dto.UpdateTransactionStatusRequest{Status: "in_progress"}, actor); err != nil {
			return txnID, err
		}
	} else if len(ft.Checklist)+len(ft.KeyDates)+len(ft.Payments) > 0 {
		return txnID, fmt.Errorf("a pending transaction cannot carry checklist items, key dates or payments")
	}

	itemIDs := make(map[string]string, len(ft.Checklist))
	for _, item := range ft.Checklist {
		due, err := parseFixtureDate(item.DueDate)
		if err != nil {
			return txnID, fmt.Errorf("checklist %q: %w", item.Title, err)
		}
		deps := make([]string, 0, len(item.DependsOn))
		for _, title := range item.DependsOn {
			id, ok := itemIDs[title]
			if !ok {
				return txnID, fmt.Errorf("checklist %q depends on unknown item %q", item.Title, title)
			}
			deps = append(deps, id)
		}
		added, err := svc.Checklist.AddItem(ctx, txnID, dto.AddChecklistItemRequest{
			Category:         item.Category,
			Title:            item.Title,
			Description:      item.Description,
			Priority:         item.Priority,
			AssignedTo:       item.AssignedTo,
			ResponsibleParty: item.ResponsibleParty,
			DueDate:          due,
			Dependencies:     deps,
			Required:         item.Required,
		}, actor)
		if err != nil {
			return txnID, fmt.Errorf("checklist %q: %w", item.Title, err)
		}
		itemIDs[item.Title] = added.Data.ItemID
	}

	for _, kd := range ft.KeyDates {
		date, err := parseFixtureDate(kd.Date)
		if err != nil {
			return txnID, fmt.Errorf("key date %q: %w", kd.Name, err)
		}
		if _, err := svc.Timeline.AddKeyDate(ctx, txnID, dto.AddKeyDateRequest{
			Name:             kd.Name,
			Date:             date,
			Type:             kd.Type,
			ResponsibleParty: kd.ResponsibleParty,
			Critical:         kd.Critical,
			Description:      kd.Description,
		}, actor); err != nil {
			return txnID, fmt.Errorf("key date %q: %w", kd.Name, err)
		}
	}

	for i, p := range ft.Payments {
		due, err := parseFixtureDate(p.DueDate)
		if err != nil {
			return txnID, fmt.Errorf("payment %d: %w", i+1, err)
		}
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return txnID, fmt.Errorf("payment %d: invalid amount %q", i+1, p.Amount)
		}
		if _, err := svc.Payment.SchedulePayment(ctx, txnID, dto.SchedulePaymentRequest{
			Type:        p.Type,
			Amount:      amount,
			Currency:    ft.Currency,
			DueDate:     due,
			FromParty:   p.FromParty,
			ToParty:     p.ToParty,
			Description: p.Description,
		}, actor); err != nil {
			return txnID, fmt.Errorf("payment %d: %w", i+1, err)
		}
	}

	for _, step := range statusPath[status] {
		if _, err := svc.Transaction.UpdateStatus(ctx, txnID, dto.UpdateTransactionStatusRequest{Status: step}, actor); err != nil {
			return txnID, fmt.Errorf("status %s: %w", step, err)
		}
	}
	return txnID, nil
}

func (ft FixtureTransaction) createRequest() (dto.CreateTransactionRequest, error) {
	total, err := decimal.NewFromString(ft.TotalValue)
	if err != nil {
		return dto.CreateTransactionRequest{}, fmt.Errorf("invalid totalValue %q", ft.TotalValue)
	}
	closing, err := parseFixtureDate(ft.ClosingDate)
	if err != nil {
		return dto.CreateTransactionRequest{}, err
	}

	req := dto.CreateTransactionRequest{
		OfferID:          ft.OfferID,
		ListingID:        ft.ListingID,
		BuyerID:          ft.BuyerID,
		SellerID:         ft.SellerID,
		TransactionType:  ft.Type,
		TotalValue:       total,
		CurrencyCode:     ft.Currency,
		ClosingDate:      closing,
		RequiresApproval: ft.RequiresApproval,
	}
	for _, p := range ft.Parties {
		req.Parties = append(req.Parties, dto.PartyRequest{UserID: p.UserID, Name: p.Name, Role: p.Role, Email: p.Email})
	}
	if s := ft.Structure; s != nil {
		ps := &dto.PaymentStructureRequest{}
		for _, part := range []struct {
			raw string
			dst *decimal.Decimal
		}{{s.Cash, &ps.CashAmount}, {s.Financed, &ps.FinancedAmount}, {s.Earnout, &ps.EarnoutAmount}} {
			if part.raw == "" {
				continue
			}
			v, err := decimal.NewFromString(part.raw)
			if err != nil {
				return dto.CreateTransactionRequest{}, fmt.Errorf("invalid payment structure amount %q", part.raw)
			}
			*part.dst = v
		}
		req.PaymentStructure = ps
	}
	return req, nil
}

func parseFixtureDate(raw string) (time.Time, error) {
	t, err := time.Parse(fixtureDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}
