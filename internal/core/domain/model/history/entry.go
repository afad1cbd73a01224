// Package history contains the append-only audit log of order transitions.
// Entries are written exactly once per accepted transition and never mutated
// or deleted; replaying them in timestamp order reconstructs the full trail.
package history

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// statusChangePattern matches the fixed human-readable phrase written into
// every transition note. Kept only for reading rows produced before the prior
// status became an explicit column.
var statusChangePattern = regexp.MustCompile(`status changed from '([^']+)' to '([^']+)'`)

// Entry is one immutable row of the audit trail: the transition that
// happened, who caused it, and when.
//
// The prior status is stored as an explicit, required field. The free-text
// note additionally carries the "status changed from 'X' to 'Y'" phrase for
// human readers, but nothing parses it on the write path.
type Entry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus order.Status
	toStatus   order.Status
	actorID    kernel.UUID
	action     order.Action
	note       string
	createdAt  time.Time

	isConstructed bool
}

// NewEntry creates an audit row for an accepted transition.
// The note is composed from the status-change phrase plus the actor's
// optional free-text remark.
func NewEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	fromStatus order.Status,
	toStatus order.Status,
	actorID kernel.UUID,
	action order.Action,
	remark string,
	now time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fromStatus.Validate(),
		toStatus.Validate(),
		actorID.Validate(),
		action.Validate(),
	); err != nil {
		return nil, err
	}

	note := StatusChangeNote(fromStatus, toStatus)
	if remark != "" {
		note = note + "; " + remark
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		actorID:       actorID,
		action:        action,
		note:          note,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	fromStatus order.Status,
	toStatus order.Status,
	actorID kernel.UUID,
	action order.Action,
	note string,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fromStatus.Validate(),
		toStatus.Validate(),
		actorID.Validate(),
		action.Validate(),
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		actorID:       actorID,
		action:        action,
		note:          note,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the audited order.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status the order left.
func (e *Entry) FromStatus() order.Status {
	return e.fromStatus
}

// ToStatus returns the status the transition produced.
func (e *Entry) ToStatus() order.Status {
	return e.toStatus
}

// ActorID returns the user who caused the transition.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// Action returns the action kind that produced this entry.
func (e *Entry) Action() order.Action {
	return e.action
}

// Note returns the free-text note, always starting with the status-change
// phrase.
func (e *Entry) Note() string {
	return e.note
}

// CreatedAt returns the commit time of the transition.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// StatusChangeNote renders the fixed human-readable phrase for a transition,
// using status labels.
func StatusChangeNote(from, to order.Status) string {
	return fmt.Sprintf("status changed from '%s' to '%s'", from.Label(), to.Label())
}

// PriorStatusFromNote extracts the prior status from a legacy note by
// matching the fixed phrase and mapping the label back to its status key.
//
// New rows carry the prior status as an explicit column; this parser exists
// for rows written before that column. It returns an error when the phrase or
// label does not match, never a silent zero value.
func PriorStatusFromNote(note string) (order.Status, error) {
	match := statusChangePattern.FindStringSubmatch(note)
	if match == nil {
		return order.StatusUnknown, errs.NewValueIsInvalidErrorWithCause("note",
			fmt.Errorf("note does not contain a status-change phrase"))
	}
	return order.StatusFromLabel(match[1])
}
