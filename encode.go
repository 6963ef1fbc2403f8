package costing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains code to persist customer data as JSONL, one
// customer per line, in a way that is still human-readable and
// git-friendly. Raw files carry only the collected inputs; allocation
// output files carry the inputs plus every derived field, so a run can
// be reviewed without re-running it.

// jcustomer is the wire form of a customer row. Every product and
// activity column is optional; an absent column is a zero value, never
// an error.
type jcustomer struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`

	CorrugatedBoard     Money `json:"corrugated_board"`
	CorrugatedCartons   Money `json:"corrugated_cartons"`
	DieCutBoxes         Money `json:"die_cut_boxes"`
	AssembledCartons    Money `json:"assembled_cartons"`
	HeavyDutyCorrugated Money `json:"heavy_duty_corrugated"`

	CorrugatedBoardCOGS     Money `json:"corrugated_board_cogs"`
	CorrugatedCartonsCOGS   Money `json:"corrugated_cartons_cogs"`
	DieCutBoxesCOGS         Money `json:"die_cut_boxes_cogs"`
	AssembledCartonsCOGS    Money `json:"assembled_cartons_cogs"`
	HeavyDutyCorrugatedCOGS Money `json:"heavy_duty_corrugated_cogs"`

	Shipments       Quantity `json:"shipments"`
	Orders          Quantity `json:"orders"`
	ExpeditedOrders Quantity `json:"expedited_orders"`
	Inquiries       Quantity `json:"inquiries"`
	DesignHours     Quantity `json:"design_hours"`
}

func (j jcustomer) record() CustomerRecord {
	return CustomerRecord{
		ID:   j.ID,
		Type: CustomerType(j.Type),
		Revenue: [NumProducts]Money{
			CorrugatedBoard:     j.CorrugatedBoard,
			CorrugatedCartons:   j.CorrugatedCartons,
			DieCutBoxes:         j.DieCutBoxes,
			AssembledCartons:    j.AssembledCartons,
			HeavyDutyCorrugated: j.HeavyDutyCorrugated,
		},
		COGS: [NumProducts]Money{
			CorrugatedBoard:     j.CorrugatedBoardCOGS,
			CorrugatedCartons:   j.CorrugatedCartonsCOGS,
			DieCutBoxes:         j.DieCutBoxesCOGS,
			AssembledCartons:    j.AssembledCartonsCOGS,
			HeavyDutyCorrugated: j.HeavyDutyCorrugatedCOGS,
		},
		Counts: [NumActivities]Quantity{
			Shipments:       j.Shipments,
			Orders:          j.Orders,
			ExpeditedOrders: j.ExpeditedOrders,
			Inquiries:       j.Inquiries,
			DesignHours:     j.DesignHours,
		},
	}
}

func wireCustomer(c CustomerRecord) jcustomer {
	return jcustomer{
		ID:   c.ID,
		Type: string(c.Type),

		CorrugatedBoard:     c.Revenue[CorrugatedBoard],
		CorrugatedCartons:   c.Revenue[CorrugatedCartons],
		DieCutBoxes:         c.Revenue[DieCutBoxes],
		AssembledCartons:    c.Revenue[AssembledCartons],
		HeavyDutyCorrugated: c.Revenue[HeavyDutyCorrugated],

		CorrugatedBoardCOGS:     c.COGS[CorrugatedBoard],
		CorrugatedCartonsCOGS:   c.COGS[CorrugatedCartons],
		DieCutBoxesCOGS:         c.COGS[DieCutBoxes],
		AssembledCartonsCOGS:    c.COGS[AssembledCartons],
		HeavyDutyCorrugatedCOGS: c.COGS[HeavyDutyCorrugated],

		Shipments:       c.Counts[Shipments],
		Orders:          c.Counts[Orders],
		ExpeditedOrders: c.Counts[ExpeditedOrders],
		Inquiries:       c.Counts[Inquiries],
		DesignHours:     c.Counts[DesignHours],
	}
}

// DecodeCustomers reads a stream of JSONL customer rows. Blank lines
// are skipped; rows without an identifier are kept and rejected later
// by the Engine, so the caller can report them with their row index.
func DecodeCustomers(r io.Reader) ([]CustomerRecord, error) {
	var records []CustomerRecord
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var j jcustomer
		if err := json.Unmarshal([]byte(line), &j); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, line, err)
		}
		records = append(records, j.record())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return records, nil
}

// EncodeCustomers persists the raw inputs of each record, one JSONL
// line per customer.
func EncodeCustomers(w io.Writer, records []CustomerRecord) error {
	for _, c := range records {
		data, err := json.Marshal(wireCustomer(c))
		if err != nil {
			return fmt.Errorf("failed to marshal customer %q: %w", c.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write customer %q: %w", c.ID, err)
		}
	}
	return nil
}

// EncodeAllocation persists a full costing run: a context line with the
// population aggregates, then one line per customer carrying the raw
// inputs and every derived field.
func EncodeAllocation(w io.Writer, a *Allocation) error {
	ctx := new(jsonObjectWriter).
		Append("period", a.Context.Period).
		Append("total_other_expenses", a.Context.TotalOtherExpenses).
		Append("total_variable_activity_cost", a.Context.TotalVariableActivityCost).
		Append("total_sales_commission", a.Context.TotalSalesCommission).
		Append("total_revenue", a.Context.TotalRevenue).
		Append("remaining_fixed_cost", a.Context.RemainingFixedCost).
		Append("fixed_cost_rate", a.Context.FixedCostRate).
		Optional("warnings", a.Context.Warnings)
	if err := encodeObject(w, ctx); err != nil {
		return fmt.Errorf("failed to write allocation context: %w", err)
	}
	for _, c := range a.Records {
		row := new(jsonObjectWriter).
			EmbedFrom(wireCustomer(c)).
			Append("total_revenue", c.TotalRevenue).
			Append("total_cogs", c.TotalCOGS).
			Append("gross_margin", c.GrossMargin).
			Append("gross_margin_rate", c.GrossMarginRate).
			Append("variable_activity_cost", c.VariableActivityCost).
			Append("sales_commission", c.SalesCommission).
			Append("allocated_fixed_cost", c.AllocatedFixedCost).
			Append("net_profit", c.NetProfit).
			Append("net_margin_rate", c.NetMarginRate).
			Optional("profit_probability", c.ProfitProbability).
			Optional("tier", c.Tier)
		if err := encodeObject(w, row); err != nil {
			return fmt.Errorf("failed to write customer %q: %w", c.ID, err)
		}
	}
	return nil
}

func encodeObject(w io.Writer, obj *jsonObjectWriter) error {
	data, err := obj.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
