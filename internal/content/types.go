package content

// Identity is identity.json.
type Identity struct {
	FullName      string `json:"fullName"`
	PreferredName string `json:"preferredName"`
	Location      string `json:"location"`
	BirthDate     string `json:"birthDate"`
	Pronouns      string `json:"pronouns"`
	Motto         string `json:"motto"`
}

// About is about.json.
type About struct {
	Headline      string   `json:"headline"`
	Paragraphs    []string `json:"paragraphs"`
	IdentityFocus []string `json:"identityFocus"`
}

// Language is one entry of languages.json.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
	Notes       string `json:"notes"`
}

// EducationEntry is one entry of education.json.
type EducationEntry struct {
	Stage       string `json:"stage"`
	Institution string `json:"institution"`
	Years       string `json:"years"`
	Notes       string `json:"notes"`
}

// Award is one entry of awards.json. Year is numeric in the source file.
type Award struct {
	Year   int    `json:"year"`
	Field  string `json:"field"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Repository is one entry of repositories.json.
type Repository struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Repo        string   `json:"repo"`
	Summary     string   `json:"summary"`
	Stack       []string `json:"stack"`
	Topics      []string `json:"topics"`
	Stars       *int     `json:"stars"`
	LastUpdated *string  `json:"lastUpdated"`
	PreviewURL  *string  `json:"previewUrl"`
}

// SocialHandle is an account on an external platform.
type SocialHandle struct {
	Handle string `json:"handle"`
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
}

// Presence is presence.json.
type Presence struct {
	GitHub         SocialHandle   `json:"github"`
	YouTube        SocialHandle   `json:"youtube"`
	Instagram      []SocialHandle `json:"instagram"`
	WikipediaDraft SocialHandle   `json:"wikipediaDraft"`
}

// Video is one entry of videos.json.
type Video struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	VideoID  string `json:"videoId"`
	URL      string `json:"url"`
}

// Footer is footer.json.
type Footer struct {
	Text       string `json:"text"`
	WikiFooter string `json:"wikiFooter"`
}

// Data holds every collection of a data directory.
type Data struct {
	Identity     Identity
	About        About
	Fields       []string
	Languages    []Language
	Education    []EducationEntry
	Awards       []Award
	Repositories []Repository
	Presence     Presence
	Videos       []Video

	// Footer is nil when footer.json is absent.
	Footer *Footer
}
