package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/infra"
	"coachly/internal/pkg/errs"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrThreadNotFound  = errs.New("chat thread not found")
	ErrDemandNotFound  = errs.New("demand not found")
	ErrProfileNotFound = errs.New("coach profile not found")
)

// Price sources, in falling order of preference.
const (
	PriceSourceAgent   = "agent"
	PriceSourceRule    = "price_rule"
	PriceSourceDefault = "default_price"
)

type ThreadSummary struct {
	ThreadID       uuid.UUID
	StudentID      uuid.UUID
	Topic          string
	RecentMessages []string
}

type DemandDetail struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	Title       string
	Description string
	BudgetCents *int64
}

type CoachProfile struct {
	CoachID           uuid.UUID
	DisplayName       string
	Specialty         string
	DefaultPriceCents int64
}

type DraftProposalInput struct {
	Thread     ThreadSummary
	Demand     DemandDetail
	Profile    CoachProfile
	StartTime  time.Time
	EndTime    time.Time
	PriceCents *int64
}

type DraftProposal struct {
	Message    string
	PriceCents *int64
}

type ChatGateway interface {
	ThreadSummary(ctx context.Context, threadID uuid.UUID) (*ThreadSummary, error)
}

type DemandGateway interface {
	DemandDetail(ctx context.Context, demandID uuid.UUID) (*DemandDetail, error)
}

type ProfileGateway interface {
	CoachProfile(ctx context.Context, coachID uuid.UUID) (*CoachProfile, error)
}

type AgentGateway interface {
	DraftProposal(ctx context.Context, input DraftProposalInput) (*DraftProposal, error)
}

type NegotiationCommands interface {
	BuildDraft(ctx context.Context, req reqdto.NegotiationDraftRequest, coachID uuid.UUID) (*queries.NegotiationDraftView, error)
}

type negotiationCommandsImpl struct {
	chat         ChatGateway
	demand       DemandGateway
	profile      ProfileGateway
	agent        AgentGateway
	ruleRepo     RuleRepository
	calendarRepo CalendarRepository
	db           *pgxpool.Pool
}

func NewNegotiationCommands(
	chat ChatGateway,
	demand DemandGateway,
	profile ProfileGateway,
	agent AgentGateway,
	ruleRepo RuleRepository,
	calendarRepo CalendarRepository,
	db *pgxpool.Pool,
) NegotiationCommands {
	return &negotiationCommandsImpl{
		chat:         chat,
		demand:       demand,
		profile:      profile,
		agent:        agent,
		ruleRepo:     ruleRepo,
		calendarRepo: calendarRepo,
		db:           db,
	}
}

// BuildDraft assembles a proposal the coach can send in the chat
// thread. The agent service writes the message when it is reachable;
// otherwise the draft falls back to the coach's own price rules, and
// failing that to the profile's default rate, with a generic message.
// The draft is never persisted here, the coach reviews and sends it.
func (n *negotiationCommandsImpl) BuildDraft(ctx context.Context, req reqdto.NegotiationDraftRequest, coachID uuid.UUID) (*queries.NegotiationDraftView, error) {
	slot, err := timerange.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	thread, err := n.chat.ThreadSummary(ctx, req.ThreadID)
	if err != nil {
		return nil, errs.Mark(err, ErrThreadNotFound)
	}
	demand, err := n.demand.DemandDetail(ctx, req.DemandID)
	if err != nil {
		return nil, errs.Mark(err, ErrDemandNotFound)
	}
	profile, err := n.profile.CoachProfile(ctx, coachID)
	if err != nil {
		return nil, errs.Mark(err, ErrProfileNotFound)
	}

	rulePrice := n.rulePrice(ctx, coachID, slot)

	draft, err := n.agent.DraftProposal(ctx, DraftProposalInput{
		Thread:     *thread,
		Demand:     *demand,
		Profile:    *profile,
		StartTime:  slot.Start(),
		EndTime:    slot.End(),
		PriceCents: rulePrice,
	})
	if err == nil && draft.PriceCents != nil {
		return n.draftView(thread.StudentID, coachID, slot, *draft.PriceCents, PriceSourceAgent, draft.Message), nil
	}
	if err != nil {
		slog.Warn("agent draft failed, falling back to rule pricing", "thread_id", req.ThreadID, "error", err.Error())
	}

	price := rulePrice
	source := PriceSourceRule
	if price == nil {
		defaultPrice := profile.DefaultPriceCents
		price = &defaultPrice
		source = PriceSourceDefault
	}
	message := fallbackMessage(profile.DisplayName, demand.Title, slot, *price)
	return n.draftView(thread.StudentID, coachID, slot, *price, source, message), nil
}

// rulePrice resolves the coach's own price rules for the slot. A
// missing calendar or rule set is not an error here, it just means no
// rule-based price exists.
func (n *negotiationCommandsImpl) rulePrice(ctx context.Context, coachID uuid.UUID, slot timerange.Range) *int64 {
	calendarID, err := n.calendarRepo.FindIDByOwner(ctx, n.db, coachID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("failed to look up coach calendar for pricing", "coach_id", coachID, "error", err.Error())
		}
		return nil
	}
	rules, err := n.ruleRepo.PriceRules(ctx, n.db, calendarID)
	if err != nil {
		slog.Warn("failed to load price rules", "calendar_id", calendarID, "error", err.Error())
		return nil
	}
	return schedule.ResolvePrice(rules, slot, time.UTC)
}

func (n *negotiationCommandsImpl) draftView(studentID, coachID uuid.UUID, slot timerange.Range, price int64, source, message string) *queries.NegotiationDraftView {
	return &queries.NegotiationDraftView{
		CoachID:     coachID,
		StudentID:   studentID,
		StartTime:   slot.Start(),
		EndTime:     slot.End(),
		PriceCents:  price,
		PriceSource: source,
		Message:     message,
	}
}

func fallbackMessage(coachName, demandTitle string, slot timerange.Range, priceCents int64) string {
	return fmt.Sprintf(
		"Hi! %s here. I'd be glad to help with %q. How about %s to %s? My rate for that slot is %.2f.",
		coachName,
		demandTitle,
		slot.Start().Format(time.RFC1123),
		slot.End().Format(time.RFC1123),
		float64(priceCents)/100,
	)
}
