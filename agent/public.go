package agent

import (
	"context"
	"fmt"

	"github.com/agencyfin/tracker"
	"github.com/agencyfin/tracker/docs"
	"github.com/agencyfin/tracker/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// BooksPath and StateFile locate the office books for the analyst's tools.
// The CLI overrides them from its global flags before starting a session.
var (
	BooksPath = "books"
	StateFile = ".aft-state.json"
)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
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

			The user runs a small real-estate office and is here primarily to understand what
			bills and commissions are due, how healthy the office finances are, and what needs
			attention first.

			Devise a plan of questions to ask to each experts and come up with the best reponse
			to the user's request.

			The user will assume that you already looked at his books, check them first through
			the experts before asking him anything.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search, for questions
// about vendors, market rates or anything outside the books.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher,
		well aware of financial institutions, typical vendor pricing, market rates
		and the latest news. Ask the Researcher whenever you need recent or
		grounding information from outside the office books.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert researcher. You can search and find about anything related to
			financial institutions, vendors, utilities, insurance or market rates.
			You leverage Google Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of reading the office books. Its
// tools expose the engine reports: inbox, health score, forecast and alerts.
func NewAnalyst() *Expert {

	lib := []Function{DueInbox, HealthReport, CashForecast, ActiveAlerts}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the office books:
		recurring obligations, settled transactions, the financial health score,
		the cash-flow forecast and the active alerts. Ask him anything about
		what is due, overdue, projected or alerting.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of a real-estate office's books.
				You know how to use the Tools to extract relevant information about the
				office's recurring obligations and cash position. You are part of a team
				of experts, yours is everything recorded in the books. They might ask you
				questions in approximative language, figure out what they meant.

				Use the available tools to report on
				  - obligations due and overdue (the inbox)
				  - the financial health score and its signals
				  - the cash-flow forecast
				  - the active alerts
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func respond(id, name string, out string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		resp.Response["error"] = err.Error()
		return resp
	}
	resp.Response["output"] = out
	return resp
}

var dateParam = &genai.Schema{
	Type: genai.TypeString,
	Description: `The date on which to compute the report. Today is the default.
	Otherwise it uses a flexible date format based on YYYY-MM-DD:

	` + must(docs.GetTopic("dates")),
}

var DueInbox = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "DueInbox",
		Description: `DueInbox lists the obligations due or overdue, bucketed into
		overdue, due this week and due this month, with per-bucket totals.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"date": dateParam},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report of the due inbox.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		now, err := parseDate(args)
		if err != nil {
			return respond(id, "DueInbox", "", err)
		}
		ledger, err := loadBooks()
		if err != nil {
			return respond(id, "DueInbox", "", err)
		}
		return respond(id, "DueInbox", renderer.InboxMarkdown(tracker.BuildInbox(ledger, now)), nil)
	},
}

var HealthReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "HealthReport",
		Description: `HealthReport computes the office financial health score (0-100)
		and details the signals behind it: payment discipline, income coverage,
		alert load and spending stability.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"date": dateParam},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted health report.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		now, err := parseDate(args)
		if err != nil {
			return respond(id, "HealthReport", "", err)
		}
		ledger, err := loadBooks()
		if err != nil {
			return respond(id, "HealthReport", "", err)
		}
		h := tracker.NewHealthScore(ledger, now)
		return respond(id, "HealthReport", renderer.HealthMarkdown(ledger.Name(), h), nil)
	},
}

var CashForecast = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "CashForecast",
		Description: `CashForecast projects the office cash position over the next
		months from the obligations' run rate, under a scenario.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": dateParam,
				"scenario": {
					Type:        genai.TypeString,
					Description: "One of 'optimistic', 'realistic' (default) or 'stressed'.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted forecast with the monthly projection and any funding gap.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		now, err := parseDate(args)
		if err != nil {
			return respond(id, "CashForecast", "", err)
		}
		name, _ := args["scenario"].(string)
		scenario, err := tracker.ParseScenario(name)
		if err != nil {
			return respond(id, "CashForecast", "", err)
		}
		ledger, err := loadBooks()
		if err != nil {
			return respond(id, "CashForecast", "", err)
		}
		f := tracker.BuildForecast(ledger, scenario, tracker.Inflow{}, tracker.ForecastOptions{}, now)
		return respond(id, "CashForecast", renderer.ForecastMarkdown(f), nil)
	},
}

var ActiveAlerts = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "ActiveAlerts",
		Description: `ActiveAlerts lists the alerts currently raised on the books:
		cash-flow crises, spending anomalies, missed income, health trends and
		dormant commitments. Dismissed and snoozed alerts are excluded.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"date": dateParam},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of active alerts, most severe first.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		now, err := parseDate(args)
		if err != nil {
			return respond(id, "ActiveAlerts", "", err)
		}
		ledger, err := loadBooks()
		if err != nil {
			return respond(id, "ActiveAlerts", "", err)
		}
		state := tracker.LoadEngineState(StateFile)
		alerts := tracker.GenerateAlerts(ledger, state, now)
		if err := state.Save(StateFile); err != nil {
			return respond(id, "ActiveAlerts", "", err)
		}
		return respond(id, "ActiveAlerts", renderer.AlertsMarkdown(ledger.Name(), alerts), nil)
	},
}

func loadBooks() (*tracker.Ledger, error) {
	ledger, err := tracker.FindLedger(BooksPath, "")
	if err != nil {
		return nil, fmt.Errorf("could not load the books: %w", err)
	}
	return ledger, nil
}

func parseDate(args map[string]any) (tracker.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return tracker.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return tracker.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := tracker.ParseDate(sdate)
	if err != nil {
		return tracker.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the format date\n\n%s ", sdate, must(docs.GetTopic("dates")))
	}

	return date, nil
}
