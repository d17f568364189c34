// Package actuarial provides functions for life insurance calculations,
// built on the ordinary-life commutation functions in package commute.
package actuarial

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gpt7702/backend/commute"
)

// MortalityTable represents a slice of mortality rates (qx) indexed by age.
type MortalityTable []float64

// PolicyHolder represents the input parameters for an insurance policy.
type PolicyHolder struct {
	Age          int     `json:"age"`
	Term         int     `json:"term"`
	SumAssured   float64 `json:"sum_assured"`
	InterestRate float64 `json:"interest_rate"`
	TableName    string  `json:"table_name"` // e.g., "male", "female"
}

// CalculationResult holds the output of the actuarial calculations.
type CalculationResult struct {
	NetPremium      float64   `json:"net_premium"`
	ReserveSchedule []float64 `json:"reserve_schedule"`
}

// LoadMortalityTable reads a mortality table from a CSV file into a MortalityTable slice.
// It expects the CSV to have a header row, be tab-delimited, and have the qx value
// in the third column.
func LoadMortalityTable(path string) (MortalityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.Comma = '\t'      // Use tab as delimiter

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var table MortalityTable
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(rec) > 2 {
			valStr := strings.TrimSpace(rec[2])
			qx, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				valStr = strings.TrimSpace(rec[1])
				qx, err = strconv.ParseFloat(valStr, 64)
				if err != nil {
					continue
				}
			}
			table = append(table, qx)
		}
	}

	return table, nil
}

// PresentValue calculates the present value of a single future payment.
func PresentValue(amount, interestRate float64, years int) float64 {
	return amount / math.Pow(1+interestRate, float64(years))
}

// policyOL builds the ordinary-life commutation functions for p's term,
// starting at p.Age in table and discounting at the flat p.InterestRate.
// Both NetPremium and NetPremiumReserves are expressed on this one
// commutation object, the way a reserve valuation built on OL commutation
// functions shares D/C/N/M across every quantity it derives.
func policyOL(p *PolicyHolder, table MortalityTable) (*commute.OL, error) {
	q := table[p.Age : p.Age+p.Term]
	i := make([]float64, p.Term)
	for t := range i {
		i[t] = p.InterestRate
	}
	return commute.NewOL(q, i)
}

// NetPremium calculates the net premium for a term life insurance policy.
// It is calculated based on the equivalence principle, where the present value
// of expected future premiums equals the present value of the expected future death benefit.
func NetPremium(p *PolicyHolder, table MortalityTable) float64 {
	ol, err := policyOL(p, table)
	if err != nil || ol.N[0] == 0 {
		return 0
	}
	return p.SumAssured * ol.M[0] / ol.N[0]
}

// NetPremiumReserves calculates the net premium reserve at the end of each year.
// The reserve at time t is the expected present value of future benefits minus the
// expected present value of future net premiums at that time.
func NetPremiumReserves(p *PolicyHolder, table MortalityTable, netPremium float64) []float64 {
	// The reserve schedule has n+1 elements, from t=0 to t=n.
	reserves := make([]float64, p.Term+1)

	ol, err := policyOL(p, table)
	if err != nil {
		return reserves
	}

	for t := 0; t <= p.Term; t++ {
		// At the end of the term (t=n), the reserve is 0.
		if t == p.Term {
			reserves[t] = 0
			continue
		}
		reserves[t] = (p.SumAssured*ol.M[t] - netPremium*ol.N[t]) / ol.D[t]
	}

	return reserves
}