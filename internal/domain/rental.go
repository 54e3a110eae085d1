package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrRentalNotFound = errors.New("rental not found")
	ErrCarNotFound    = errors.New("car not found")
	ErrClientNotFound = errors.New("client not found")
	ErrCarUnavailable = errors.New("car already has an open rental")
)

// RentalNotFoundMessage is what GetInfo renders for an unknown rental.
const RentalNotFoundMessage = "Rent not found."

// DisplayTimeLayout is the layout used for timestamps in rental summaries.
const DisplayTimeLayout = "2006-01-02 15:04:05"

type RentalStatus string

const (
	RentalStatusOpen   RentalStatus = "OPEN"
	RentalStatusClosed RentalStatus = "CLOSED"
)

// Rental is a rental session. End, Distance and Cost are nil while the
// rental is open and are set together, once, when it is closed.
type Rental struct {
	ID       int64      `json:"id"`
	ClientID int64      `json:"client_id"`
	CarID    int64      `json:"car_id"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	Distance *float64   `json:"distance,omitempty"`
	Cost     *float64   `json:"cost,omitempty"`
}

func (r *Rental) Status() RentalStatus {
	if r.End == nil {
		return RentalStatusOpen
	}
	return RentalStatusClosed
}

// CloseQuote carries what is needed to close a rental: its start, whether it
// is already closed, and the car's current rates.
type CloseQuote struct {
	RentalID     int64
	Start        time.Time
	Closed       bool
	HourlyRate   float64
	DistanceRate float64
}

type CloseOutcome string

const (
	CloseOutcomeClosed        CloseOutcome = "CLOSED"
	CloseOutcomeNotFound      CloseOutcome = "NOT_FOUND"
	CloseOutcomeAlreadyClosed CloseOutcome = "ALREADY_CLOSED"
)

// CloseResult is returned by EndRent. Cost is only meaningful when Outcome
// is CloseOutcomeClosed.
type CloseResult struct {
	Outcome CloseOutcome `json:"outcome"`
	Cost    float64      `json:"cost"`
}

// RentalInfo is a rental joined with its client and car. The client and car
// fields are left empty when the referenced row no longer exists.
type RentalInfo struct {
	Rental
	ClientName      string  `json:"client_name"`
	ClientEmail     string  `json:"client_email"`
	CarModel        string  `json:"car_model"`
	CarHourlyRate   float64 `json:"car_hourly_rate"`
	CarDistanceRate float64 `json:"car_distance_rate"`
}

// Summary renders the single-line description of a rental. Open rentals show
// "open" for the end time and "-" for distance and cost.
func (ri *RentalInfo) Summary() string {
	end, kms, cost := "open", "-", "-"
	if ri.End != nil {
		end = ri.End.Format(DisplayTimeLayout)
	}
	if ri.Distance != nil {
		kms = strconv.FormatFloat(*ri.Distance, 'f', -1, 64)
	}
	if ri.Cost != nil {
		cost = fmt.Sprintf("%.2f", *ri.Cost)
	}
	return fmt.Sprintf("Rent ID: %d, Client: %s, Car: %s, Start: %s, End: %s, Kms: %s, Cost: %s",
		ri.ID, ri.ClientName, ri.CarModel, ri.Start.Format(DisplayTimeLayout), end, kms, cost)
}
