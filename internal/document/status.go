package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Status is the lifecycle stage of a proposal.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSent      Status = "Sent"
	StatusViewed    Status = "Viewed"
	StatusCommented Status = "Commented"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusSent, StatusViewed, StatusCommented, StatusApproved, StatusRejected}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) String() string { return string(s) }

func transitionError(from Status, action string) error {
	return proposaerrors.NewValidationError("status", fmt.Sprintf("cannot %s a proposal in status %s", action, from), nil)
}

// Send moves a draft to Sent.
func (p *Proposal) Send(now time.Time) error {
	if p.Status != StatusDraft {
		return transitionError(p.Status, "send")
	}
	p.Status = StatusSent
	p.LastActivity = now
	return nil
}

// RecordView counts a view of the public link. The first view of a sent
// proposal moves it to Viewed; views after a terminal status are still
// counted.
func (p *Proposal) RecordView(now time.Time) {
	p.TotalViews++
	if p.Status == StatusSent {
		p.Status = StatusViewed
	}
	p.LastActivity = now
}

// RecordComment appends a comment and moves a sent or viewed proposal to
// Commented.
func (p *Proposal) RecordComment(author string, kind AuthorType, content string, now time.Time) (Comment, error) {
	if p.Status.Terminal() || p.Status == StatusDraft {
		return Comment{}, transitionError(p.Status, "comment on")
	}
	if content == "" {
		return Comment{}, proposaerrors.NewValidationError("content", "comment is empty", nil)
	}
	comment := Comment{
		ID:         uuid.NewString(),
		Author:     author,
		AuthorType: kind,
		Content:    content,
		Timestamp:  now,
	}
	p.Comments = append(p.Comments, comment)
	p.Status = StatusCommented
	p.LastActivity = now
	return comment, nil
}

// Approve records a signed approval. signature is the PNG data URL captured
// from the signing pad.
func (p *Proposal) Approve(signature string, signer Signer, now time.Time) error {
	if p.Status.Terminal() {
		return transitionError(p.Status, "approve")
	}
	if signature == "" {
		return proposaerrors.NewValidationError("signature", "a signature is required to approve", nil)
	}
	p.Status = StatusApproved
	p.Approval = &Approval{SignedAt: now, Signature: signature, Signer: signer}
	p.LastActivity = now
	return nil
}

// Reject closes the proposal without approval.
func (p *Proposal) Reject(now time.Time) error {
	if p.Status.Terminal() {
		return transitionError(p.Status, "reject")
	}
	p.Status = StatusRejected
	p.LastActivity = now
	return nil
}
