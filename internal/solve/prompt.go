package solve

import (
	"fmt"

	"github.com/jmhart/agenttree/pkg/models"
)

// solvePrompt hands the oracle one task together with its place in the
// tree and its plan document. The oracle is expected to amend the plan
// document in place and may create supporting artifacts beside the task.
const solvePrompt = `You are solving a specific task within a larger system.

Here's where your task fits in the overall structure:
%s

Current task file: %s
Task content:
%s

Related plan file: %s

Instructions:
1. Read the task carefully
2. You can read other task files if you need context about dependencies or integration
3. Implement the solution by creating/editing necessary code files
4. Update the plan file with:
   - Progress notes
   - Any decisions made
   - Summary of what was implemented

Focus on solving just this specific task. Other tasks in the tree will be handled separately.`

// buildPrompt fills the solve prompt for one task.
func buildPrompt(taskPath, content, treeContext string) string {
	return fmt.Sprintf(solvePrompt, treeContext, taskPath, content, models.PlanPath(taskPath))
}
