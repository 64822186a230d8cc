package clients

import (
	"github.com/hourboard/dashboard-api/pkg/domain"
)

// jobcodeClientTable maps known job code name substrings to sample client
// ids. Lookup is case insensitive.
var jobcodeClientTable = map[string]string{
	"acme":     "1",
	"globex":   "2",
	"initech":  "3",
	"umbrella": "4",
	"stark":    "5",
}

// SeedSampleData installs the fixed demo dataset. It replaces whatever
// the repository currently holds, so callers gate it on first install.
func (r *Repository) SeedSampleData() {
	r.clients = map[string]*domain.Client{}
	r.order = nil
	r.contacts = map[string][]domain.Contact{}
	r.projects = map[string][]domain.Project{}
	r.notes = map[string][]domain.Note{}
	r.billing = map[string]*domain.BillingProfile{}

	samples := []domain.Client{
		{
			ID: "1", Name: "Acme Corporation", Industry: "Manufacturing",
			Status: domain.ClientActive, CreatedAt: "2023-03-14",
			Address: "120 Foundry Rd, Springfield, IL",
			Website: "https://acme.example.com",
			LogoURL: logoURL("Acme Corporation"),
		},
		{
			ID: "2", Name: "Globex Industries", Industry: "Energy",
			Status: domain.ClientActive, CreatedAt: "2023-06-02",
			Address: "45 Turbine Way, Cypress Creek, OR",
			Website: "https://globex.example.com",
			LogoURL: logoURL("Globex Industries"),
		},
		{
			ID: "3", Name: "Initech Solutions", Industry: "Software",
			Status: domain.ClientActive, CreatedAt: "2023-09-21",
			Address: "4120 Freidrich Ln, Austin, TX",
			Website: "https://initech.example.com",
			LogoURL: logoURL("Initech Solutions"),
		},
		{
			ID: "4", Name: "Umbrella Logistics", Industry: "Transportation",
			Status: domain.ClientInactive, CreatedAt: "2022-11-08",
			Address: "9 Harbor Blvd, Raccoon City, WA",
			Website: "https://umbrella.example.com",
			LogoURL: logoURL("Umbrella Logistics"),
		},
		{
			ID: "5", Name: "Stark Manufacturing", Industry: "Aerospace",
			Status: domain.ClientActive, CreatedAt: "2024-01-17",
			Address: "1 Engineer Plaza, Malibu, CA",
			Website: "https://stark.example.com",
			LogoURL: logoURL("Stark Manufacturing"),
		},
	}
	for i := range samples {
		c := samples[i]
		r.install(&c)
	}

	// Sample rates diverge from the creation default on purpose so the
	// revenue tables show variety.
	r.billing["1"].Rate = 175
	r.billing["2"].Rate = 150
	r.billing["2"].Cycle = domain.CycleQuarterly
	r.billing["3"].Rate = 195
	r.billing["3"].Terms = domain.TermsNet15
	r.billing["4"].Rate = 120
	r.billing["4"].Terms = domain.TermsNet45
	r.billing["5"].Rate = 210
	r.billing["5"].Cycle = domain.CycleWeekly

	r.contacts["1"] = []domain.Contact{
		{Name: "Wile Coyote", Title: "Head of Procurement", Email: "wile@acme.example.com", Phone: "555-0114"},
		{Name: "Edna Krab", Title: "CFO", Email: "edna@acme.example.com", Phone: "555-0181"},
	}
	r.contacts["2"] = []domain.Contact{
		{Name: "Hank Scorpio", Title: "CEO", Email: "hank@globex.example.com", Phone: "555-0139"},
	}
	r.contacts["3"] = []domain.Contact{
		{Name: "Bill Lumbergh", Title: "VP Engineering", Email: "bill@initech.example.com", Phone: "555-0127"},
	}
	r.contacts["5"] = []domain.Contact{
		{Name: "Pepper Potts", Title: "COO", Email: "pepper@stark.example.com", Phone: "555-0160"},
	}

	r.projects["1"] = []domain.Project{
		{ID: "p-1001", Name: "Assembly Line Retrofit", Status: domain.ProjectInProgress, Deadline: "2024-08-30"},
		{ID: "p-1002", Name: "Inventory Audit", Status: domain.ProjectCompleted, Deadline: "2024-02-15"},
	}
	r.projects["2"] = []domain.Project{
		{ID: "p-2001", Name: "Reactor Telemetry", Status: domain.ProjectPlanning, Deadline: "2024-11-01"},
	}
	r.projects["3"] = []domain.Project{
		{ID: "p-3001", Name: "TPS Reporting Portal", Status: domain.ProjectInProgress, Deadline: "2024-07-12"},
		{ID: "p-3002", Name: "Printer Decommission", Status: domain.ProjectOnHold, Deadline: "2024-09-01"},
	}
	r.projects["5"] = []domain.Project{
		{ID: "p-5001", Name: "Clean Energy Pilot", Status: domain.ProjectInProgress, Deadline: "2024-12-20"},
	}

	r.notes["1"] = []domain.Note{
		{Date: "2024-01-09", Author: "admin", Content: "Renewal discussion scheduled for Q3."},
	}
	r.notes["4"] = []domain.Note{
		{Date: "2023-12-01", Author: "admin", Content: "Account paused, reactivate after contract review."},
	}

	r.seeded = true
}
