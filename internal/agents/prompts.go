package agents

// calendarAnalyzerPrompt drives the planner's calendar step; the
// filtered events are supplied as the user turn.
const calendarAnalyzerPrompt = `Analyze calendar events and identify:
Events: {events}

Focus on:
- Available time blocks
- Energy impact of activities
- Potential conflicts
- Recovery periods
- Study opportunity windows
- Activity patterns
- Schedule optimization
`

// taskAnalyzerPrompt drives the planner's task step; the task list is
// supplied as the user turn.
const taskAnalyzerPrompt = `Analyze tasks and create priority structure:
Tasks: {tasks}

Consider:
- Urgency levels
- Task complexity
- Energy requirements
- Dependencies
- Required focus levels
- Time estimations
- Learning objectives
- Success criteria
`

// planGeneratorPrompt synthesizes the final study plan. Verbs: profile
// analysis, calendar analysis, task analysis, history, few-shot
// examples.
const planGeneratorPrompt = `AI Planning Assistant: Create focused study plan using ReACT framework.

INPUT CONTEXT:
- Profile Analysis: %s
- Calendar Analysis: %s
- Task Analysis: %s

CONVERSATION HISTORY:
%s

EXAMPLES:
%s

INSTRUCTIONS:
1. Follow ReACT pattern:
  Thought: Analyze situation and needs
  Action: Consider all analyses
  Observation: Synthesize findings
  Plan: Create structured plan

2. Address:
  - ADHD management strategies
  - Energy level optimization
  - Task chunking methods
  - Focus period scheduling
  - Environment switching tactics
  - Recovery period planning
  - Social/sport activity balance

3. Include:
  - Emergency protocols
  - Backup strategies
  - Quick wins
  - Reward system
  - Progress tracking
  - Adjustment triggers

4. If this is a follow-up question, reference and build upon the previous conversation context.

Pls act as an intelligent tool to help the students reach their goals or overcome struggles and answer with informal words.

FORMAT:
Thought: [reasoning and situation analysis]
Action: [synthesis approach]
Observation: [key findings]
Plan: [actionable steps and structural schedule]
`

// noteAnalyzePrompt determines the optimal note structure. Verbs:
// learning style JSON, request.
const noteAnalyzePrompt = `Analyze content requirements and determine optimal note structure:

STUDENT PROFILE:
- Learning Style: %s
- Request: %s

FORMAT:
1. Key Topics (80/20 principle)
2. Learning Style Adaptations
3. Time Management Strategy
4. Quick Reference Format

FOCUS ON:
- Essential concepts that give maximum understanding
- Visual and interactive elements
- Time-optimized study methods
`

// noteGeneratePrompt creates the study materials. Verbs: analysis,
// learning style JSON, request, history, few-shot examples.
const noteGeneratePrompt = `Create concise, high-impact study materials based on analysis:

ANALYSIS: %s
LEARNING STYLE: %s
REQUEST: %s

CONVERSATION HISTORY:
%s

EXAMPLES:
%s

If this is a follow-up question, reference and build upon the previous conversation context.

FORMAT:
**THREE-WEEK INTENSIVE STUDY PLANNER**

[Generate structured notes with:]
1. Weekly breakdown
2. Daily focus areas
3. Core concepts
4. Emergency tips
`

// advisorAnalyzePrompt evaluates the student's situation. Verbs:
// profile JSON, learning preferences JSON, request.
const advisorAnalyzePrompt = `Analyze student situation and determine guidance approach:

CONTEXT:
- Profile: %s
- Learning Preferences: %s
- Request: %s

ANALYZE:
1. Current challenges
2. Learning style compatibility
3. Time management needs
4. Stress management requirements
`

// advisorGuidancePrompt produces the final advice. Verbs: analysis,
// request, history, few-shot examples.
const advisorGuidancePrompt = `Generate personalized academic guidance based on analysis:

ANALYSIS: %s
REQUEST: %s

CONVERSATION HISTORY:
%s

EXAMPLES: %s

If this is a follow-up question, reference and build upon the previous conversation context.

FORMAT:
1. Immediate Action Steps
2. Schedule Optimization
3. Energy Management
4. Support Strategies
5. Emergency Protocols
`

// plannerFewShots are example scenarios showing the planner's expected
// thought/action/plan structure.
var plannerFewShots = []map[string]string{
	{
		"input":       "Help with exam prep while managing ADHD and football",
		"thought":     "Need to check calendar conflicts and energy patterns",
		"action":      "search_calendar",
		"observation": "Football match at 6PM, exam tomorrow 9AM",
		"plan": `ADHD-OPTIMIZED SCHEDULE:
PRE-FOOTBALL (2PM-5PM):
- 3x20min study sprints
- Movement breaks
- Quick rewards after each sprint

FOOTBALL MATCH (6PM-8PM):
- Use as dopamine reset
- Formula review during breaks

POST-MATCH (9PM-12AM):
- Environment: Café noise
- 15/5 study/break cycles
- Location changes hourly

EMERGENCY PROTOCOLS:
- Focus lost → jumping jacks
- Overwhelmed → room change
- Brain fog → cold shower`,
	},
	{
		"input":       "Struggling with multiple deadlines",
		"thought":     "Check task priorities and performance issues",
		"action":      "analyze_tasks",
		"observation": "3 assignments due, lowest grade in Calculus",
		"plan": `PRIORITY SCHEDULE:
HIGH-FOCUS SLOTS:
- Morning: Calculus practice
- Post-workout: Assignments
- Night: Quick reviews

ADHD MANAGEMENT:
- Task timer challenges
- Reward system per completion
- Study buddy accountability`,
	},
}

// noteWriterFewShots show the expected note format.
var noteWriterFewShots = []map[string]string{
	{
		"input":    "Need to cram Calculus III for tomorrow",
		"template": "Quick Review",
		"notes": `CALCULUS III ESSENTIALS:

1. CORE CONCEPTS (80/20 Rule):
   • Multiple Integrals → volume/area
   • Vector Calculus → flow/force/rotation
   • KEY FORMULAS:
     - Triple integrals in cylindrical/spherical coords
     - Curl, divergence, gradient relationships

2. COMMON EXAM PATTERNS:
   • Find critical points
   • Calculate flux/work
   • Optimize with constraints

3. QUICKSTART GUIDE:
   • Always draw 3D diagrams
   • Check units match
   • Use symmetry to simplify

4. EMERGENCY TIPS:
   • If stuck, try converting coordinates
   • Check boundary conditions
   • Look for special patterns`,
	},
}

// advisorFewShots show the expected guidance format.
var advisorFewShots = []map[string]any{
	{
		"request": "Managing multiple deadlines with limited time",
		"profile": map[string]any{
			"learning_style":   "visual",
			"workload":         "heavy",
			"time_constraints": []string{"2 hackathons", "project", "exam"},
		},
		"advice": `PRIORITY-BASED SCHEDULE:

1. IMMEDIATE ACTIONS
   • Create visual timeline of all deadlines
   • Break each task into 45-min chunks
   • Schedule high-focus work in mornings

2. ENERGY MANAGEMENT
   • Alternate intense and light sessions
   • Protect one full rest block daily

3. CONTINGENCY
   • Identify the minimum viable deliverable per deadline
   • Flag conflicts to instructors early`,
	},
}
