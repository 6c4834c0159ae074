// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Envelope status constants
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Listing time windows
const (
	StateAll     = "all"
	StateOngoing = "ongoing"
	StateEnded   = "ended"
)

// PageSize is the number of polls in one listing page
const PageSize = 10

// Role is the role of an ordinary (non-admin) user
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

// Identity is the authenticated caller of a request.
// Admins are a separate identity kind and carry Admin == true.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
}

// IsManager reports whether the caller is a manager-role user
func (i Identity) IsManager() bool {
	return !i.Admin && i.Role == RoleManager
}

// Request types

type PollRequest struct {
	Title     string       `json:"title"`
	Content   *PollContent `json:"content,omitempty"`
	IsPrivate bool         `json:"is_private"`
	Password  string       `json:"password,omitempty"`
	Anonymous bool         `json:"anonymous"`
	EndAt     string       `json:"end_at"`
}

// Option is kept raw so the voting layer can tell missing from malformed
type CastBallotRequest struct {
	Option json.RawMessage `json:"option"`
}

// Response types

// Envelope wraps every API response
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type PollResponse struct {
	Poll *Poll `json:"poll"`
}

type PollListResponse struct {
	Polls []Poll `json:"polls"`
}

type PollViewResponse struct {
	Poll   *Poll `json:"poll"`
	Result []int `json:"result"`
}

type ResultResponse struct {
	PollID string `json:"poll_id"`
	Result []int  `json:"result"`
}

type BallotResponse struct {
	Ballot *Ballot `json:"ballot"`
}

// Domain types

// PollContent is the options specification of a poll
type PollContent struct {
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options"`
}

type Poll struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Content        PollContent `json:"content"`
	OwnerID        string      `json:"owner_id"`
	IsPrivate      bool        `json:"is_private"`
	PasswordDigest string      `json:"-"` // Never expose in JSON
	Anonymous      bool        `json:"anonymous"`
	IsActive       bool        `json:"is_active"`
	EndAt          time.Time   `json:"end_at"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OptionCount is the number of selectable options
func (p *Poll) OptionCount() int {
	return len(p.Content.Options)
}

// HasEnded reports whether the poll's end time is at or before now
func (p *Poll) HasEnded(now time.Time) bool {
	return !p.EndAt.After(now)
}

type Ballot struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterID     string    `json:"voter_id"`
	OptionIndex int       `json:"option"`
	CastAt      time.Time `json:"cast_at"`
}
