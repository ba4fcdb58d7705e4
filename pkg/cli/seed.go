package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/cli/config"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/usecase"
	"github.com/secops-lab/incidentdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func sampleIncidents(now time.Time) []*model.Incident {
	return []*model.Incident{
		{
			Title:             "Unauthorized access to production server",
			Description:       "Suspicious access attempt detected on the main production server. Multiple failed logins from an unknown IP.",
			Severity:          types.SeverityCritical,
			Status:            types.StatusInvestigating,
			Type:              types.TypeUnauthorizedAccess,
			AdditionalDetails: "Source IP 192.168.1.254. Repeated SSH attempts with invalid credentials. IDS blocked the IP after 5 attempts.",
			Assignee:          &model.Assignee{Name: "Joao Silva", Initials: "JS"},
			AffectedSystems:   []string{"Production DB-01", "API-PROD gateway"},
			Timeline: []model.TimelineEvent{
				{Time: now.Add(-35 * time.Minute), Event: "First access attempt detected"},
				{Time: now.Add(-30 * time.Minute), Event: "Alert created automatically"},
				{Time: now.Add(-25 * time.Minute), Event: "Incident assigned to Joao Silva"},
				{Time: now.Add(-15 * time.Minute), Event: "Investigation started"},
			},
		},
		{
			Title:             "Phishing campaign detected",
			Description:       "Several employees received fraudulent mails requesting corporate credentials.",
			Severity:          types.SeverityHigh,
			Status:            types.StatusOpen,
			Type:              types.TypePhishing,
			AdditionalDetails: "Mail domain mimics the corporate one (corp-security.net instead of corp-security.com). Contains malicious attachments.",
			AffectedSystems:   []string{"Corporate email", "Potential credential exposure"},
			Timeline: []model.TimelineEvent{
				{Time: now.Add(-3 * time.Hour), Event: "First report of suspicious mail"},
				{Time: now.Add(-150 * time.Minute), Event: "Security team alerted all users"},
				{Time: now.Add(-2 * time.Hour), Event: "Domain blocked in the spam filter"},
			},
		},
		{
			Title:             "Malware detected on workstation",
			Description:       "Antivirus detected a trojan on a finance department workstation. Network access was isolated.",
			Severity:          types.SeverityMedium,
			Status:            types.StatusResolved,
			Type:              types.TypeMalware,
			AdditionalDetails: "Identified as Trojan.GenericKD.45721123. Likely origin: download from an untrusted source.",
			Assignee:          &model.Assignee{Name: "Maria Santos", Initials: "MS"},
			AffectedSystems:   []string{"Workstation FIN-PC-15", "Finance system"},
			Timeline: []model.TimelineEvent{
				{Time: now.Add(-48 * time.Hour), Event: "Antivirus detection"},
				{Time: now.Add(-36 * time.Hour), Event: "Machine isolated from the network"},
				{Time: now.Add(-29 * time.Hour), Event: "Forensic analysis started"},
				{Time: now.Add(-24 * time.Hour), Event: "Malware removed and full system scan completed"},
			},
		},
		{
			Title:             "Potential data exfiltration",
			Description:       "Suspicious transfer of a large data volume to an unknown domain.",
			Severity:          types.SeverityHigh,
			Status:            types.StatusInvestigating,
			Type:              types.TypeDataBreach,
			AdditionalDetails: "Roughly 2.3GB transferred to an external address. Detected by network monitoring, log analysis ongoing.",
			Assignee:          &model.Assignee{Name: "Carlos Oliveira", Initials: "CO"},
			AffectedSystems:   []string{"File server", "Customer database"},
			Timeline: []model.TimelineEvent{
				{Time: now.Add(-12 * time.Hour), Event: "Anomalous data transfer alert"},
				{Time: now.Add(-10 * time.Hour), Event: "Investigation started"},
				{Time: now.Add(-8 * time.Hour), Event: "Preventive block of traffic to the destination"},
				{Time: now.Add(-6 * time.Hour), Event: "Log analysis identified compromised accounts"},
			},
		},
		{
			Title:             "DDoS attack on public API",
			Description:       "API service degraded by a high volume of malicious requests. Mitigation in progress.",
			Severity:          types.SeverityCritical,
			Status:            types.StatusOpen,
			Type:              types.TypeDDoS,
			AdditionalDetails: "Distributed attack estimated at 120Gbps. WAF and anti-DDoS services activated.",
			AffectedSystems:   []string{"API Gateway", "Edge servers", "Public services"},
			Timeline: []model.TimelineEvent{
				{Time: now.Add(-15 * time.Minute), Event: "Abnormal traffic increase detected"},
				{Time: now.Add(-12 * time.Minute), Event: "Anti-DDoS protections activated"},
				{Time: now.Add(-8 * time.Minute), Event: "Firewall rules adjusted"},
				{Time: now.Add(-5 * time.Minute), Event: "Partial impact reduction, continuous monitoring"},
			},
		},
	}
}

func cmdSeed() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "seed",
		Usage: "Insert sample incidents into an empty store",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)

			existing, err := uc.Incident.List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to check existing incidents")
			}
			if len(existing) > 0 {
				logger.Info("Store already contains incidents, skipping seed", "count", len(existing))
				return nil
			}

			for _, inc := range sampleIncidents(time.Now().UTC()) {
				created, err := uc.Incident.Create(ctx, inc)
				if err != nil {
					return goerr.Wrap(err, "failed to insert sample incident", goerr.V("title", inc.Title))
				}
				logger.Info("Sample incident inserted", "id", created.ID, "title", created.Title)
			}

			logger.Info("Sample data inserted")
			return nil
		},
	}
}
