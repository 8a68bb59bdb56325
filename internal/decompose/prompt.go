package decompose

import "fmt"

// decompositionPrompt instructs the oracle to create the plan document
// and, if warranted, the children directory. The file names and the
// subtask skeleton are part of the on-disk contract; the solve phase and
// human editors both rely on them.
const decompositionPrompt = `You are helping decompose a complex task into subtasks.

Task file: %s
Task content:
%s

Please:
1. Create a file named ` + "`%s_plan.md`" + ` with:
   - Analysis of how to break down this task
   - Links to the subtasks you'll create

2. Create a folder named ` + "`%s_children/`" + `

3. In that folder, create .md files for each subtask with:
   # [Subtask Title]
   ## Type
   [simple or complex - simple means it can be solved directly, complex needs further breakdown]
   ## Summary
   [One line summary]
   ## Task
   [Detailed description]
   ### Dependents
   [List of markdown links to other tasks that depend on this, if any]

Keep subtask names short and descriptive (e.g., fetch_urls.md, parse_html.md).
If the task does not benefit from decomposition, solve it directly instead and create no folder.
`

// buildPrompt fills the decomposition prompt for one task.
func buildPrompt(taskPath, name, content string) string {
	return fmt.Sprintf(decompositionPrompt, taskPath, content, name, name)
}
