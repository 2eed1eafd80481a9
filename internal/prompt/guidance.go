package prompt

// Disciplines is the fixed set of intern roles, in cross-reference order:
// business observations drive systems engineering decisions, which drive
// developer work.
var Disciplines = []string{"Business", "Systems Engineer", "Developer"}

// OutputTemplate is the literal event format the model must produce.
const OutputTemplate = `## Week {week number}: {short event title}

**Discipline:** {discipline}
**Scenario:** {2-4 sentences describing what happened this week on the project}
**Your Task:** {what the intern must investigate, decide, or produce}
**Deliverable:** {the concrete artifact the intern hands in at the end of the week}

---
`

// guidance maps each discipline to its static guidance block. This is
// configuration data, not logic; no two disciplines share guidance.
var guidance = map[string]string{
	"Business": `Events centre on stakeholders, scope, and money. Typical weeks involve a
customer changing requirements, a competitor announcement, a budget or
licensing question, a compliance deadline, or a pricing decision that needs
market research. Tasks should force a written recommendation with a clear
trade-off, not just analysis. Deliverables are memos, one-pagers, cost
models, or stakeholder briefs. Avoid anything requiring code.`,

	"Systems Engineer": `Events centre on architecture, interfaces, and operational risk. Typical
weeks involve a capacity projection that breaks an assumption, an integration
partner publishing a new interface, a failure mode discovered in review, a
deployment environment constraint, or a make-versus-buy evaluation. Tasks
should force a design decision with explicit alternatives considered.
Deliverables are interface specs, architecture decision records, capacity
analyses, or risk registers. Code is read, not written.`,

	"Developer": `Events centre on building and debugging within the existing codebase.
Typical weeks involve implementing a feature against a fixed interface,
reproducing and fixing a reported defect, a dependency upgrade with breaking
changes, a performance regression, or adding tests to untested code. Tasks
must name concrete components of the project and be completable by one person
in a week. Deliverables are working code with tests, or a written root-cause
analysis when the task is diagnostic.`,
}

// GuidanceFor returns the guidance block for a discipline. Unknown
// disciplines yield the empty string so callers stay total.
func GuidanceFor(discipline string) string {
	return guidance[discipline]
}
