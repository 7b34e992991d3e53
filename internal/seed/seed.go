// Package seed creates a demo account with a realistic trading history.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradetracker/internal/domain"
)

// Demo account credentials
const (
	DemoEmail    = "test@test.com"
	DemoPassword = "test123"
)

const demoBrokerageFee = 6.0

// Registrar creates and authenticates user accounts
type Registrar interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// Ledger records trades and deposits for a user
type Ledger interface {
	CreateTrade(ctx context.Context, ownerID uuid.UUID, in domain.TradeInput) (*domain.Trade, error)
	ListTrades(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trade, error)
	CreateDeposit(ctx context.Context, ownerID uuid.UUID, in domain.DepositInput) (*domain.Deposit, error)
	ListDeposits(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deposit, error)
}

// Result summarizes a seeding run. Deposits and Trades count the rows
// inserted by this run only.
type Result struct {
	Skipped  bool
	Resumed  bool
	UserID   uuid.UUID
	Deposits int
	Trades   int
}

type demoDeposit struct {
	amount float64
	date   string
	notes  string
}

type demoTrade struct {
	symbol     string
	entryDate  string
	exitDate   string
	entryPrice float64
	exitPrice  float64
	shares     float64
	notes      string
}

// Deposits converted from AUD
var demoDeposits = []demoDeposit{
	{971.92, "2025-06-13", "1500 AUD converted"},
	{641.31, "2025-07-17", "1000 AUD converted"},
	{643.25, "2025-08-15", "1000 AUD converted"},
	{646.65, "2025-09-06", "1000 AUD converted"},
	{657.26, "2025-09-16", "1000 AUD converted"},
}

var demoTrades = []demoTrade{
	{"SOFI", "2025-06-19", "2025-06-23", 14.89, 14.87, 34.853, ""},
	{"AEIS", "2025-06-24", "2025-06-24", 130.60, 129.73, 3.923, ""},
	{"NVDA", "2025-06-19", "2025-06-27", 145.40, 155.53, 3.074, ""},
	{"AMD", "2025-06-24", "2025-07-11", 132.98, 144.34, 3.781, ""},
	{"FTDR", "2025-07-11", "2025-07-21", 58.86, 56.74, 17.243, "Small loss, cut early"},
	{"OPEN", "2025-07-19", "2025-07-21", 2.10, 2.95, 304.073, "Fat profit"},
	{"SMCI", "2025-07-21", "2025-07-25", 53.48, 53.76, 34.905, "meh"},
	{"NVDA", "2025-07-29", "2025-08-01", 174.65, 177.99, 10.71, "Clean 1.5% scalp, smooth"},
	{"AMD", "2025-08-02", "2025-08-05", 171.29, 175.86, 11.094, "Tight scalp, good read"},
	{"CRWD", "2025-08-06", "2025-08-07", 444.45, 439.96, 4.376, ""},
	{"TSM", "2025-08-12", "2025-08-14", 244.23, 236.92, 7.859, "Stop hit"},
	{"AMZN", "2025-08-19", "2025-08-20", 229.34, 225.00, 10.898, "Another loss"},
	{"NVDA", "2025-08-21", "2025-08-22", 170.05, 171.57, 14.383, "Set stop loss too tight"},
	{"AMD", "2025-08-23", "2025-09-06", 168.23, 150.72, 14.633, "Should have respected the stop"},
	{"VST", "2025-09-06", "2025-09-06", 178.77, 186.54, 12.303, "Clean scalp"},
	{"AMZN", "2025-09-06", "2025-09-09", 232.75, 236.53, 12.613, "Quick scalp"},
	{"MU", "2025-09-09", "2025-09-10", 133.48, 139.07, 22.305, "Tight scalp, smooth"},
	{"CRWD", "2025-09-11", "2025-09-16", 429.89, 445.35, 7.202, "Split into 2 sells"},
	{"PLTR", "2025-09-17", "2025-09-18", 170.16, 163.91, 22.660, "Stop hit"},
	{"TSLA", "2025-09-17", "2025-09-18", 419.10, 426.24, 8.848, "Clean scalp"},
	{"INTC", "2025-09-18", "2025-09-19", 31.29, 32.24, 120.343, "Decent scalp"},
	{"AMZN", "2025-09-19", "2025-09-22", 233.72, 229.78, 16.576, "Stop hit"},
	{"TSLA", "2025-09-22", "2025-09-24", 437.36, 434.09, 8.695, "Lossy scalp"},
	{"AMD", "2025-09-23", "2025-09-25", 161.98, 155.79, 23.264, "Stop hit"},
}

// Seeder populates the demo account
type Seeder struct {
	users  Registrar
	ledger Ledger
	log    zerolog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(users Registrar, ledger Ledger, log zerolog.Logger) *Seeder {
	return &Seeder{
		users:  users,
		ledger: ledger,
		log:    log.With().Str("component", "seed").Logger(),
	}
}

// Run creates the demo user and its history. When the demo user already
// exists, rows missing from an interrupted earlier run are filled in and a
// complete history is left alone.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	user, err := s.users.Register(ctx, DemoEmail, DemoPassword)
	switch {
	case errors.Is(err, domain.ErrConflict):
		user, err = s.users.Verify(ctx, DemoEmail, DemoPassword)
		if err != nil {
			s.log.Warn().Err(err).Str("email", DemoEmail).Msg("Demo user exists with other credentials, skipping seed")
			return &Result{Skipped: true}, nil
		}
		result.Resumed = true
	case err != nil:
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	result.UserID = user.ID

	existingDeposits, existingTrades, err := s.existing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.seedDeposits(ctx, user.ID, existingDeposits, result); err != nil {
		s.logPartial(result, err)
		return nil, err
	}
	if err := s.seedTrades(ctx, user.ID, existingTrades, result); err != nil {
		s.logPartial(result, err)
		return nil, err
	}

	if result.Resumed && result.Deposits == 0 && result.Trades == 0 {
		s.log.Info().Str("email", DemoEmail).Msg("Demo user already seeded, skipping")
		result.Skipped = true
		return result, nil
	}

	s.log.Info().
		Str("email", DemoEmail).
		Bool("resumed", result.Resumed).
		Int("deposits", result.Deposits).
		Int("trades", result.Trades).
		Msg("Demo data seeded")
	return result, nil
}

// existing returns the keys of the demo rows already stored for the user
func (s *Seeder) existing(ctx context.Context, userID uuid.UUID) (map[string]bool, map[string]bool, error) {
	deposits, err := s.ledger.ListDeposits(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list demo deposits: %w", err)
	}
	trades, err := s.ledger.ListTrades(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list demo trades: %w", err)
	}

	depositKeys := make(map[string]bool, len(deposits))
	for _, d := range deposits {
		depositKeys[depositKey(domain.FormatDate(d.DepositDate), d.Amount)] = true
	}
	tradeKeys := make(map[string]bool, len(trades))
	for _, t := range trades {
		tradeKeys[tradeKey(t.Symbol, domain.FormatDate(t.EntryDate), t.EntryPrice)] = true
	}
	return depositKeys, tradeKeys, nil
}

func (s *Seeder) seedDeposits(ctx context.Context, userID uuid.UUID, existing map[string]bool, result *Result) error {
	for _, d := range demoDeposits {
		if existing[depositKey(d.date, d.amount)] {
			continue
		}
		in := domain.DepositInput{
			Amount:      d.amount,
			DepositDate: mustDate(d.date),
			Notes:       optionalNote(d.notes),
		}
		if _, err := s.ledger.CreateDeposit(ctx, userID, in); err != nil {
			return fmt.Errorf("failed to seed deposit of %s: %w", d.date, err)
		}
		result.Deposits++
	}
	return nil
}

func (s *Seeder) seedTrades(ctx context.Context, userID uuid.UUID, existing map[string]bool, result *Result) error {
	for _, t := range demoTrades {
		if existing[tradeKey(t.symbol, t.entryDate, t.entryPrice)] {
			continue
		}
		exitDate := mustDate(t.exitDate)
		exitPrice := t.exitPrice
		fee := demoBrokerageFee
		in := domain.TradeInput{
			Symbol:       t.symbol,
			EntryDate:    mustDate(t.entryDate),
			ExitDate:     &exitDate,
			EntryPrice:   t.entryPrice,
			ExitPrice:    &exitPrice,
			Shares:       t.shares,
			BrokerageFee: &fee,
			Notes:        optionalNote(t.notes),
		}
		if _, err := s.ledger.CreateTrade(ctx, userID, in); err != nil {
			return fmt.Errorf("failed to seed %s trade of %s: %w", t.symbol, t.entryDate, err)
		}
		result.Trades++
	}
	return nil
}

func (s *Seeder) logPartial(result *Result, err error) {
	s.log.Error().
		Err(err).
		Str("email", DemoEmail).
		Int("deposits", result.Deposits).
		Int("trades", result.Trades).
		Msg("Demo seed interrupted, rerun to fill in the missing rows")
}

func depositKey(date string, amount float64) string {
	return fmt.Sprintf("%s|%.2f", date, amount)
}

func tradeKey(symbol, entryDate string, entryPrice float64) string {
	return fmt.Sprintf("%s|%s|%.4f", symbol, entryDate, entryPrice)
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("seed: invalid date %q", s))
	}
	return d
}

func optionalNote(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
