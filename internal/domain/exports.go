package domain

import (
	interfaces "quantumtie/internal/domain/interfaces"
	types "quantumtie/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Pattern          = types.Pattern
	Counts           = types.Counts
	Pixel            = types.Pixel
	Frame            = types.Frame
	JobStatus        = types.JobStatus
	Circuit          = types.Circuit
	BackendStatus    = types.BackendStatus
	BackendConfig    = types.BackendConfig
	NoiseModelRecord = types.NoiseModelRecord
	Channel          = types.Channel
	Account          = types.Account
	Direction        = types.Direction
	StickAction      = types.StickAction
	StickEvent       = types.StickEvent
	EnvInfo          = types.EnvInfo
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Backend         = interfaces.Backend
	Job             = interfaces.Job
	RuntimeService  = interfaces.RuntimeService
	Display         = interfaces.Display
	Stick           = interfaces.Stick
	Accelerometer   = interfaces.Accelerometer
	ResultSink      = interfaces.ResultSink
	CredentialStore = interfaces.CredentialStore
	ModelStore      = interfaces.ModelStore
	Prompter        = interfaces.Prompter
	AccountService  = interfaces.AccountService
	ModelService    = interfaces.ModelService
	Pinger          = interfaces.Pinger
)

// Re-exported constants.
const (
	FrameSize = types.FrameSize

	JobInitializing = types.JobInitializing
	JobQueued       = types.JobQueued
	JobValidating   = types.JobValidating
	JobRunning      = types.JobRunning
	JobDone         = types.JobDone
	JobCancelled    = types.JobCancelled
	JobError        = types.JobError

	ChannelQuantumPlatform = types.ChannelQuantumPlatform
	ChannelCloud           = types.ChannelCloud
	ChannelQuantum         = types.ChannelQuantum

	StickUp     = types.StickUp
	StickDown   = types.StickDown
	StickLeft   = types.StickLeft
	StickRight  = types.StickRight
	StickMiddle = types.StickMiddle

	ActionPressed  = types.ActionPressed
	ActionReleased = types.ActionReleased
	ActionHeld     = types.ActionHeld
)

// Re-exported colours.
var (
	Black  = types.Black
	White  = types.White
	Red    = types.Red
	Blue   = types.Blue
	Purple = types.Purple
)

// Zeros returns an all-zero pattern of length n.
func Zeros(n int) Pattern { return types.Zeros(n) }

// Fill returns a frame with every pixel set to p.
func Fill(p Pixel) Frame { return types.Fill(p) }
