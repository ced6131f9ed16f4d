// Package models refreshes the local cache of device calibration data used
// to build noise models for the local simulator.
package models
