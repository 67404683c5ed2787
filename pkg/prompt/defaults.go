package prompt

// Template tokens understood by the built-in prompts.
const (
	// BusinessSearch: {count}, {city}, {excludeBusinesses}
	BusinessSearch = `Find {count} small LOCAL businesses in {city}, UK. Only independent, locally-owned businesses: no chains, no franchises, no big brands.

{excludeBusinesses}

CRITICAL REQUIREMENT: every business must NOT have a website. Acceptable businesses only have:
- a Google Business Profile listing
- a Facebook page
- a phone number in directories
- no web presence at all

Search online for each business and confirm it has no proper website. If it has one, skip it and find another.

Return ONLY a valid JSON object (no markdown, no extra text):
{
  "businesses": [
    {
      "business_type": "restaurant/cafe/shop/salon/plumber/electrician/other service",
      "name": "Business Name",
      "address": "Full address with postcode, UK",
      "phone": "+44XXXXXXXXXX",
      "email": "contact@example.com or empty string if not found",
      "description": "Brief 1-line description of what they do"
    }
  ]
}

REQUIREMENTS:
- Return ONLY the JSON object
- Phone numbers MUST include the +44 country code
- Return EXACTLY {count} businesses
- Mix business types (restaurants, cafes, shops, salons, plumbers, electricians, etc.)`

	// VerifyWebsite: {name}, {address}
	VerifyWebsite = `Search the web for "{name}" in {address}. Does this business have an official website (not just social media pages like Facebook or Instagram, and not directory listings like Google Business Profile or Yelp)?

Answer "YES" if they have a proper website, or "NO" if they only have social media or no web presence.

Format your response as JSON: {"has_website": "YES" or "NO", "found_url": "url if found or empty string"}`
)

const emailReturnFormat = `Return ONLY valid JSON:
{
  "email_body": "Complete email ending with the signature exactly as given",
  "key_issues": ["No website", "Missing online presence", "Hard for customers to find online"],
  "subject_line": "Short subject line mentioning {name}"
}`

const businessDetails = `Business Details:
- Business Name: {name}
- Type: {business_type}
- Location: {address}
- Phone: {phone}
- Description: {description}
- Suggested Price: £{price}`

// Built-in email style keys.
const (
	StyleNoSite      = "nosite"
	StyleNoSitePart2 = "nosite_part2"
	StyleNoSitePart3 = "nosite_part3"
	StyleCasual      = "casual"
	StyleDirect      = "direct"
)

// EmailGeneration is the default email prompt: {name}, {business_type},
// {address}, {phone}, {description}, {price}, {signature}.
const EmailGeneration = `You are a friendly local business helper writing a simple, genuine email to a local business without a website.

` + businessDetails + `

Write a DIRECT, SIMPLE and GENUINE email:

1. OPENING: start with "I was trying to find your website and couldn't find it."
2. BODY: mention their name, what they do and where they are; explain in plain words how a website helps local customers find them; no technical jargon, not salesy.
3. OFFER: say you can build them a professional website for £{price} (use this exact price).
4. CLOSING: end with this signature exactly:
Would you prefer a 2-minute video walkthrough or a quick call?

{signature}

` + emailReturnFormat + `

Keep the email between 150 and 200 words and return ONLY the JSON object.`

// Style describes a built-in email style.
type Style struct {
	Name        string
	Description string
	Prompt      string
}

// Styles returns the built-in email styles keyed by style id.
func Styles() map[string]Style {
	return map[string]Style{
		StyleNoSite: {
			Name:        "No Site",
			Description: "Direct, genuine approach for businesses without websites",
			Prompt:      EmailGeneration,
		},
		StyleNoSitePart2: {
			Name:        "No Site Part 2",
			Description: "Blunt follow-up about what a missing website costs today",
			Prompt: `You are a direct, no-nonsense business advisor writing a short wake-up call email to a local business without a website.

` + businessDetails + `

1. OPENING: something like "This might sound blunt, but not having a proper website today is like not having a sign above your front door."
2. BODY (80-100 words): customers check businesses online before visiting or calling; without a website they pick the competitor who shows up. Direct, never rude.
3. OFFER: you build websites for small UK businesses, £{price}.
4. CLOSING: end with this signature exactly:
Would you prefer a 2-minute video walkthrough or a quick call?

{signature}

` + emailReturnFormat + `

Keep it to 120-150 words and return ONLY the JSON object.`,
		},
		StyleNoSitePart3: {
			Name:        "No Site Part 3",
			Description: "Like No Site, plus a free preview offer, for the £299 tier",
			Prompt: `You are a friendly local business helper writing a simple, genuine email to a local business without a website.

` + businessDetails + `

1. OPENING: start with "I was trying to find your website and couldn't find it."
2. BODY: mention their name, what they do and where they are; explain simply how a website helps local customers find them.
3. OFFER: a professional website for £{price}, and you can build a FREE preview of their site before any payment. The free preview MUST be mentioned.
4. CLOSING: end with this signature exactly:
Would you prefer a 2-minute video walkthrough or a quick call?

{signature}

` + emailReturnFormat + `

Keep the email between 150 and 200 words and return ONLY the JSON object.`,
		},
		StyleCasual: {
			Name:        "Casual & Friendly",
			Description: "Warm, conversational, one local business owner to another",
			Prompt: `Write a warm, casual outreach email to {name}, a {business_type} in {address} that has no website. Short sentences, friendly tone, not salesy. Offer a website for £{price}. Under 200 words. Sign off with:
{signature}

` + emailReturnFormat,
		},
		StyleDirect: {
			Name:        "Direct & Brief",
			Description: "Facts only, 150 words max",
			Prompt: `Write a direct, to-the-point email to {name}, a {business_type} in {address} that has no website. No fluff: state the problem, the impact, and the offer (a website for £{price}). Maximum 150 words. Respectful but blunt. Sign off with:
{signature}

` + emailReturnFormat,
		},
	}
}
