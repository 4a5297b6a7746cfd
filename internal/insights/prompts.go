package insights

import (
	"fmt"
	"strings"
)

// Prompt text lives here, not inline in the calling code, so wording changes
// are reviewable on their own. These are version 1; the classifier output
// contract below is load-bearing — regression tests compare against stubbed
// replies shaped by it.

const classifierRulesTemplate = `You are an intelligent assistant that classifies expenses into categories. Here are some rules to guide your responses:

1. We have a list of categories: %s.

2. If the user's message does not contain enough information for an expense or is not related to an expense, fill it in as "Unknown" or make an educated guess based on the available information (for the following fields: Name, Category, Item) -> very important.

3. If the input could potentially fall into multiple categories, make an educated guess based on the information available.

4. If the input doesn't provide a valid amount spent, fill it in as "Unknown" or "0".`

const classifierOutputContract = `Please classify the expense into one of the categories and generate a JSON object with the following fields (Use capitalize format):
1. name (2 words or more of summarization with clear action context of the text and establishment's name, if it is not about expenses or spending, fill it as "Unknown")
2. item (the item purchased)
3. category (the best fitting category from the list)
4. amount (the amount spent, just number do not include currency character)

JSON:`

const recommenderPersona = "You are a helpful personal finance assistant for students that provides spending recommendations for students. Analyze the spending data and provide recommendations on how to save money and improve spending habits. Consider aspects like too much spending on certain categories, reduce spending on not primary stuffs, exploring cheaper options, and find alternatives to replace too much spending. Lastly, make it concise."

// classifierSystemPrompt renders the rules prompt with the current taxonomy.
func classifierSystemPrompt() string {
	return fmt.Sprintf(classifierRulesTemplate, strings.Join(Categories, ", "))
}
