// Package engine implements the rule-evaluation and matching core:
// projecting rule offsets onto calendar dates, matching friends by
// birthday month/day, and driving one dispatch per (rule, friend) match.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ybdev/birthdayd/internal/store"
)

// Dispatcher delivers a single reminder. Implementations must isolate
// transport failures: Dispatch never reports an error, so one failed
// send cannot block the rest of a matching cycle.
type Dispatcher interface {
	Dispatch(ctx context.Context, fullName string, daysUntil int)
}

// Engine composes the stores and the dispatcher into matching cycles.
// It holds no state between ticks; every cycle re-evaluates from scratch.
type Engine struct {
	db         *store.DB
	dispatcher Dispatcher
	log        zerolog.Logger
}

// New creates an Engine.
func New(db *store.DB, dispatcher Dispatcher, log zerolog.Logger) *Engine {
	return &Engine{db: db, dispatcher: dispatcher, log: log}
}

// ProjectDate returns ref shifted by daysBefore calendar days. Plain
// proleptic day arithmetic: month ends, year ends and leap-year Feb 29
// all roll over correctly, and negative offsets subtract days.
func ProjectDate(ref time.Time, daysBefore int) time.Time {
	return ref.AddDate(0, 0, daysBefore)
}

// RunTick executes one matching cycle against the clock reading in now:
// select the rules due at now's hour, project each rule's offset onto a
// target date, and dispatch a reminder for every friend whose birthday
// month/day matches. Nothing escapes the tick — store errors and panics
// are logged and swallowed so the recurring trigger is never cancelled.
func (e *Engine) RunTick(ctx context.Context, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("tick panicked")
		}
	}()

	hour := now.Hour()
	e.log.Debug().Int("hour", hour).Msg("running birthdays check")

	rules, err := e.db.ListRulesByHour(hour)
	if err != nil {
		e.log.Error().Err(err).Int("hour", hour).Msg("list rules for hour")
		return
	}
	if len(rules) == 0 {
		e.log.Debug().Int("hour", hour).Msg("no rules scheduled")
		return
	}

	e.log.Info().Int("hour", hour).Int("rules", len(rules)).Msg("processing rules")

	for _, rule := range rules {
		target := ProjectDate(now, rule.DaysBefore)

		friends, err := e.db.FindFriendsByMonthDay(int(target.Month()), target.Day())
		if err != nil {
			e.log.Error().Err(err).
				Int64("rule_id", rule.ID).
				Str("target", target.Format("02.01")).
				Msg("find friends for target date")
			continue
		}
		if len(friends) == 0 {
			continue
		}

		e.log.Info().
			Int64("rule_id", rule.ID).
			Int("days_before", rule.DaysBefore).
			Str("target", target.Format("02.01")).
			Int("friends", len(friends)).
			Msg("found matching birthdays")

		for _, f := range friends {
			e.dispatcher.Dispatch(ctx, f.FullName, rule.DaysBefore)
		}
	}
}
