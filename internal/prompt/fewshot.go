package prompt

import "github.com/promptrefiner/promptrefiner/internal/llm"

// Few-shot exemplars. Each pair teaches the model the exact positional
// layout of the user turn and the exact JSON shape of the response. Tag
// ordering in these exemplars must stay in lockstep with the builder's
// fixed field order.

var analyzerFewShots = []llm.Exemplar{
	{
		User: `<target_model>anthropic/claude-3.5-sonnet</target_model>
<original_prompt>Write a poem about the ocean</original_prompt>
<extra_context></extra_context>`,
		Assistant: `{"analysis":"The draft names a topic but nothing else: no form, length, mood, or audience. Almost every creative decision is currently delegated to the model.","improvementAreas":["Poetic form and length are unspecified","Emotional register and imagery direction are open","Audience and publication context are unknown"],"questions":[{"id":"poem_form","question":"What form or length should the poem take (haiku, sonnet, free verse, roughly how many lines)?","purpose":"Form drives nearly every structural choice in a poem."},{"id":"emotional_tone","question":"What feeling should the reader be left with - awe, calm, melancholy, something else?","purpose":"Tone anchors the imagery and word choice."}],"blueprint":{"version":"` + Version + `","intent":"Generate an original poem about the ocean","audience":"Not specified yet","successCriteria":["Poem is original and centered on ocean imagery","Form and tone match the user's stated preferences"],"requiredInputs":["Desired form and length","Desired emotional tone"],"domainContext":["Ocean poetry spans traditions from haiku to romantic verse"],"constraints":["Topic fixed: the ocean"],"tone":"Not specified yet","risks":["Generic output if form and mood remain unstated"],"outputFormat":"A single poem as plain text","evaluationChecklist":["Does the poem evoke the ocean concretely?","Does it honor the requested form and length?"]},"overallConfidence":"Low readiness: the intent is clear but every stylistic dimension is still open."}`,
	},
	{
		User: `<target_model>openai/gpt-4o</target_model>
<original_prompt>Analyze our Q3 sales numbers and tell me what went wrong</original_prompt>
<extra_context>B2B SaaS company, sales dipped 12% against forecast</extra_context>`,
		Assistant: `{"analysis":"The draft states a goal and supplies one headline metric, but the model has no data, no definition of \"wrong\", and no sense of what decisions the analysis should inform.","improvementAreas":["No sales data or schema is attached","Success metric and comparison baseline are undefined","Audience for the analysis (exec vs. ops) is unknown"],"questions":[{"id":"data_access","question":"What data will you paste or attach - raw transactions, a pipeline export, or summary tables?","purpose":"The required analysis depends entirely on the granularity of available data."},{"id":"decision_context","question":"What decision will this analysis feed - territory planning, pricing, headcount?","purpose":"The decision determines which root causes matter."},{"id":"report_audience","question":"Who reads the result - the exec team or the sales ops team?","purpose":"Audience sets the depth and vocabulary of the output."}],"blueprint":{"version":"` + Version + `","intent":"Diagnose the causes of a 12% Q3 sales shortfall against forecast","audience":"Not specified yet","successCriteria":["Shortfall is decomposed into quantified drivers","Each driver links to an actionable recommendation"],"requiredInputs":["Q3 sales data with segment and rep granularity","The forecast model or baseline used"],"domainContext":["B2B SaaS company","12% miss against forecast"],"constraints":["Analysis must be grounded in supplied data, not speculation"],"tone":"Direct, data-driven, executive-appropriate","risks":["Speculative conclusions if no raw data is shared","Misleading attribution without a clear baseline"],"outputFormat":"Structured findings with quantified drivers and recommendations","evaluationChecklist":["Is every claimed driver tied to a number?","Are recommendations specific enough to act on?"]},"overallConfidence":"Medium readiness: the goal and one metric are known, but data access and audience must be resolved first."}`,
	},
}

var refinerFewShots = []llm.Exemplar{
	{
		User: `<target_model>anthropic/claude-3.5-sonnet</target_model>
<original_prompt>Write a poem about the ocean</original_prompt>
<extra_context></extra_context>
<tone></tone>
<output_requirements></output_requirements>
<blueprint>{"version":"` + Version + `","intent":"Generate an original poem about the ocean","audience":"General readers","successCriteria":["Poem is original and centered on ocean imagery"],"requiredInputs":["Desired form and length"],"domainContext":["Ocean poetry spans many traditions"],"constraints":["Topic fixed: the ocean"],"tone":"Contemplative","risks":["Generic output"],"outputFormat":"A single poem as plain text","evaluationChecklist":["Does the poem evoke the ocean concretely?"]}</blueprint>
<questions>[{"id":"poem_form","question":"What form or length should the poem take?","purpose":"Form drives structure."}]</questions>
<answers>{"poem_form":"Free verse, about 16 lines"}</answers>
<formatted_answers>Question (poem_form): What form or length should the poem take?
Answer: Free verse, about 16 lines</formatted_answers>`,
		Assistant: `{"refinedPrompt":"## Role\nYou are a published poet with a gift for natural imagery.\n\n## Goal\nWrite an original free-verse poem about the ocean, roughly 16 lines long.\n\n## Required Inputs\nNone - all creative direction is included below.\n\n## Context / Background\nThe poem stands alone for general readers; no collection or prompt-specific occasion applies.\n\n## Constraints & Guardrails\n- Free verse, approximately 16 lines\n- Center every image on the ocean; avoid cliches like \"vast blue expanse\"\n\n## Tone & Voice\nContemplative and sensory; let rhythm mirror tidal movement.\n\n## Output Format\nThe poem only, as plain text with line breaks. No title, no commentary.\n\n## Quality Checks\nBefore answering, verify the poem is 14-18 lines and every stanza contains at least one concrete ocean image.","guidance":"Paste this prompt as a single user message. If the first result feels generic, ask for a second pass emphasizing one sense (sound or smell) only.","changeSummary":["Fixed form and length from the user's answer","Added a role and concrete imagery constraints","Specified output as the bare poem with a self-check"],"assumptions":["General adult readership, since no audience was given"],"evaluationCriteria":["Roughly 16 lines of free verse","Imagery is concrete and ocean-specific","No meta-commentary around the poem"]}`,
	},
}

var systemPromptFewShots = []llm.Exemplar{
	{
		User: `<target_model>openai/gpt-4o</target_model>
<use_case>A support assistant for a developer-tools SaaS that answers product questions, triages bug reports, and escalates billing issues to humans.</use_case>
<constraints>Never promise refunds. Never speculate about unreleased features.</constraints>`,
		Assistant: `{"systemPrompt":"# Identity\nYou are Ada, the support assistant for DevKit, a developer-tools SaaS.\n\n# Capabilities\n- Answer product and API questions using the documentation context provided to you\n- Triage bug reports: collect version, OS, reproduction steps, and expected vs. actual behavior\n- Recognize billing issues and hand them off\n\n# Boundaries\n- Never promise refunds, credits, or discounts\n- Never speculate about unreleased features or roadmaps\n- If a request involves billing or account deletion, reply that a human teammate will follow up and tag the conversation for escalation\n\n# Tone\nFriendly, precise, and efficient. Prefer short answers with code examples over long explanations.\n\n# Refusals\nDecline requests unrelated to DevKit support politely and in one sentence.","promptStructure":["Identity","Capabilities","Boundaries","Tone","Refusals"],"designRationale":"Support assistants fail most often on scope creep and unauthorized commitments, so the prompt leads with a narrow identity and makes the two forbidden commitments explicit boundary rules rather than tone guidance.","customizationNotes":["Replace the assistant and product names","List the actual escalation tag or channel your tooling expects","Add links to your documentation index if retrieval is wired in"],"evaluationCriteria":["Billing questions are escalated, never answered substantively","No refund or roadmap commitments appear in any reply","Bug triage collects all four requested fields"]}`,
	},
}
