package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"google.golang.org/genai"

	"github.com/tugpack/costing"
	"github.com/tugpack/costing/period"
	"github.com/tugpack/costing/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the chat in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a manager of a corrugated packaging company. He is here primarily to understand
			which customers make or lose money, why the costing engine allocated costs the way it did,
			and which accounts deserve attention next year.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounding answers in public sources.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an industry researcher,
		well aware of the corrugated packaging market, raw material prices
		and the economics of the main product lines.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the packaging industry. You can search and find about anything
			related to corrugated board, paper prices, logistics costs and packaging customers.
			You leverage Google Search to ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the costing data. It can
// run the allocation and the tier model through its function library.
func NewAnalyst() *Expert {
	lib := []Function{AllocationReport, TierReport}

	return &Expert{
		Name: "Analyst",
		Description: `This is the management Analyst. He is in charge of the customer
		profitability data: he can run the activity-based cost allocation for a period
		and score customers into profitability tiers.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a management accountant in charge of customer profitability.
				You know how to use the Tools to produce the allocation report and the tier report.
				You are part of a team of experts, yours is everything about cost allocation,
				customer margins and profitability tiers. Pardon their approximative language
				and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

var periodSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: `The fiscal year to report on, like "2020". The latest period with expense history is the default.`,
}

// AllocationReport runs the cost allocation and renders its report.
var AllocationReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "AllocationReport",
		Description: `AllocationReport allocates the period's operating expenses to every customer
		and summarizes the run: population KPIs, expense pool breakdown, product lines,
		margin bands and the best and worst customers.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"period": periodSchema,
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted customer profitability report for the period.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return respond(id, "AllocationReport", func() (string, error) {
			a, err := allocate(args)
			if err != nil {
				return "", err
			}
			return renderer.RenderAllocation(costing.NewAllocationReport(a, 10)), nil
		})
	},
}

// TierReport trains the profitability classifier and renders the tiers.
var TierReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "TierReport",
		Description: `TierReport trains the profitability classifier on the period's allocation
		and buckets every customer into a potential tier, with the model's held-out quality
		and its main drivers.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"period": periodSchema,
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted customer tier report for the period.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return respond(id, "TierReport", func() (string, error) {
			a, err := allocate(args)
			if err != nil {
				return "", err
			}
			m, err := costing.Train(a.Records, costing.DefaultTrainerConfig())
			if err != nil {
				return "", err
			}
			scored, err := m.Score(a.Records)
			if err != nil {
				return "", err
			}
			return renderer.RenderTiers(costing.NewTierReport(a.Context.Period, scored, m, 5)), nil
		})
	},
}

func respond(id, name string, f func() (string, error)) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	out, err := f()
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = out
	return fresp
}

// allocate runs the costing pipeline from the application's default
// data files, for the requested period or the latest one on record.
func allocate(args map[string]any) (*costing.Allocation, error) {
	history, err := loadHistory()
	if err != nil {
		return nil, err
	}

	p, err := parsePeriod(args, history)
	if err != nil {
		return nil, err
	}
	expenses, err := costing.OtherExpensesFor(history, p)
	if err != nil {
		return nil, err
	}

	customers, err := loadCustomers()
	if err != nil {
		return nil, err
	}
	return costing.NewEngine().Allocate(p, customers, expenses), nil
}

func loadCustomers() ([]costing.CustomerRecord, error) {
	customersFile := "customers.jsonl"
	f, err := os.Open(customersFile)
	if err != nil {
		return nil, fmt.Errorf("could not open customers file %q: %w", customersFile, err)
	}
	defer f.Close()
	records, err := costing.DecodeCustomers(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode customers file %q: %w", customersFile, err)
	}
	return records, nil
}

func loadHistory() ([]costing.PeriodSummary, error) {
	historyFile := "history.jsonl"
	f, err := os.Open(historyFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no expense history: %q does not exist", historyFile)
		}
		return nil, fmt.Errorf("could not open history file %q: %w", historyFile, err)
	}
	defer f.Close()
	summaries, err := costing.DecodePeriodSummaries(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode history file %q: %w", historyFile, err)
	}
	return summaries, nil
}

func parsePeriod(args map[string]any, history []costing.PeriodSummary) (period.Period, error) {
	iperiod, hasPeriod := args["period"]
	if !hasPeriod {
		return costing.LatestPeriod(history)
	}
	speriod, ok := iperiod.(string)
	if !ok {
		return 0, fmt.Errorf("argument 'period' is not a string as expected but %T", iperiod)
	}
	return period.Parse(speriod)
}
