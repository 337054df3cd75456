package skills

// Entry is one skill of the static dictionary.
//
// Context lists words that must appear somewhere in the text for the bare
// Name to count. It is set for names that collide with ordinary words
// ("Go", "R", "C", "Swift"). Aliases are always trusted.
type Entry struct {
	Name     string
	Category string
	Aliases  []string
	Context  []string
}

const (
	CategoryLanguage  = "language"
	CategoryFramework = "framework"
	CategoryDatabase  = "database"
	CategoryCloud     = "cloud"
	CategoryDevOps    = "devops"
	CategoryData      = "data"
	CategoryTool      = "tool"
	CategoryMethod    = "method"
	CategorySoft      = "soft"
	CategoryLanguages = "spoken_language"
)

var devContext = []string{"developpeur", "developer", "langage", "programmation", "backend", "back-end", "frontend", "stack", "code", "ingenieur"}

var dictionary = []Entry{
	// Languages
	{Name: "Go", Category: CategoryLanguage, Aliases: []string{"golang"}, Context: []string{"developpeur go", "go developer", "en go", "langage go", "goroutine", "backend go", "go/"}},
	{Name: "Python", Category: CategoryLanguage},
	{Name: "Java", Category: CategoryLanguage, Aliases: []string{"java ee", "jee", "j2ee"}},
	{Name: "JavaScript", Category: CategoryLanguage, Aliases: []string{"js", "ecmascript", "es6"}},
	{Name: "TypeScript", Category: CategoryLanguage, Aliases: []string{"ts"}},
	{Name: "PHP", Category: CategoryLanguage},
	{Name: "Ruby", Category: CategoryLanguage},
	{Name: "C#", Category: CategoryLanguage, Aliases: []string{"csharp", "c sharp"}},
	{Name: "C++", Category: CategoryLanguage, Aliases: []string{"cpp"}},
	{Name: "C", Category: CategoryLanguage, Aliases: []string{"langage c"}, Context: []string{"embarque", "embedded", "microcontroleur", "firmware", "c/c++", "systeme", "bas niveau"}},
	{Name: "Rust", Category: CategoryLanguage, Context: devContext},
	{Name: "Kotlin", Category: CategoryLanguage},
	{Name: "Swift", Category: CategoryLanguage, Context: []string{"ios", "xcode", "apple", "swiftui", "mobile"}},
	{Name: "Scala", Category: CategoryLanguage},
	{Name: "R", Category: CategoryLanguage, Aliases: []string{"rstudio", "langage r"}, Context: []string{"statistique", "statistics", "data scientist", "tidyverse", "ggplot", "biostat"}},
	{Name: "SQL", Category: CategoryLanguage},
	{Name: "Bash", Category: CategoryLanguage, Aliases: []string{"shell", "scripting shell"}},
	{Name: "HTML", Category: CategoryLanguage, Aliases: []string{"html5"}},
	{Name: "CSS", Category: CategoryLanguage, Aliases: []string{"css3", "sass", "scss"}},

	// Frameworks
	{Name: "React", Category: CategoryFramework, Aliases: []string{"reactjs", "react.js"}},
	{Name: "Angular", Category: CategoryFramework, Aliases: []string{"angularjs"}},
	{Name: "Vue.js", Category: CategoryFramework, Aliases: []string{"vuejs", "vue 3", "nuxt"}},
	{Name: "Node.js", Category: CategoryFramework, Aliases: []string{"nodejs", "node"}},
	{Name: "Express", Category: CategoryFramework, Aliases: []string{"expressjs", "express.js"}, Context: []string{"node", "nodejs", "node.js", "javascript", "api"}},
	{Name: "Django", Category: CategoryFramework},
	{Name: "Flask", Category: CategoryFramework},
	{Name: "Spring", Category: CategoryFramework, Aliases: []string{"spring boot", "springboot"}, Context: []string{"java", "jee", "kotlin", "microservices"}},
	{Name: "Symfony", Category: CategoryFramework},
	{Name: "Laravel", Category: CategoryFramework},
	{Name: ".NET", Category: CategoryFramework, Aliases: []string{"dotnet", "asp.net", ".net core"}},
	{Name: "Ruby on Rails", Category: CategoryFramework, Aliases: []string{"rails", "ror"}},
	{Name: "Flutter", Category: CategoryFramework},
	{Name: "React Native", Category: CategoryFramework},

	// Databases
	{Name: "PostgreSQL", Category: CategoryDatabase, Aliases: []string{"postgres", "postgresql", "psql"}},
	{Name: "MySQL", Category: CategoryDatabase, Aliases: []string{"mariadb"}},
	{Name: "MongoDB", Category: CategoryDatabase, Aliases: []string{"mongo"}},
	{Name: "Redis", Category: CategoryDatabase},
	{Name: "Oracle", Category: CategoryDatabase, Aliases: []string{"pl/sql", "plsql"}},
	{Name: "Elasticsearch", Category: CategoryDatabase, Aliases: []string{"elastic search", "elk", "opensearch"}},

	// Cloud
	{Name: "AWS", Category: CategoryCloud, Aliases: []string{"amazon web services"}},
	{Name: "Azure", Category: CategoryCloud, Aliases: []string{"microsoft azure"}},
	{Name: "Google Cloud", Category: CategoryCloud, Aliases: []string{"gcp", "google cloud platform"}},

	// DevOps
	{Name: "Docker", Category: CategoryDevOps},
	{Name: "Kubernetes", Category: CategoryDevOps, Aliases: []string{"k8s", "openshift"}},
	{Name: "Terraform", Category: CategoryDevOps},
	{Name: "Ansible", Category: CategoryDevOps},
	{Name: "CI/CD", Category: CategoryDevOps, Aliases: []string{"integration continue", "gitlab ci", "github actions", "jenkins"}},
	{Name: "Linux", Category: CategoryDevOps, Aliases: []string{"unix", "debian", "ubuntu"}},
	{Name: "Git", Category: CategoryTool, Aliases: []string{"github", "gitlab"}},

	// Data
	{Name: "Machine Learning", Category: CategoryData, Aliases: []string{"apprentissage automatique", "ml"}},
	{Name: "Deep Learning", Category: CategoryData, Aliases: []string{"tensorflow", "pytorch", "keras"}},
	{Name: "Pandas", Category: CategoryData, Context: []string{"python", "data", "numpy", "dataframe"}},
	{Name: "Spark", Category: CategoryData, Aliases: []string{"apache spark", "pyspark"}, Context: []string{"data", "big data", "hadoop", "scala", "databricks"}},
	{Name: "Power BI", Category: CategoryData, Aliases: []string{"powerbi"}},
	{Name: "Tableau", Category: CategoryData, Context: []string{"dashboard", "data", "bi", "visualisation", "reporting"}},
	{Name: "Excel", Category: CategoryTool, Aliases: []string{"vba"}},

	// Tools & methods
	{Name: "Jira", Category: CategoryTool},
	{Name: "Figma", Category: CategoryTool},
	{Name: "SAP", Category: CategoryTool},
	{Name: "Salesforce", Category: CategoryTool},
	{Name: "Agile", Category: CategoryMethod, Aliases: []string{"agilite", "methodes agiles", "methodologie agile"}},
	{Name: "Scrum", Category: CategoryMethod, Aliases: []string{"scrum master"}},
	{Name: "REST API", Category: CategoryMethod, Aliases: []string{"api rest", "restful", "api restful"}},
	{Name: "GraphQL", Category: CategoryMethod},
	{Name: "Microservices", Category: CategoryMethod, Aliases: []string{"micro-services", "microservice"}},
	{Name: "TDD", Category: CategoryMethod, Aliases: []string{"test driven development", "tests unitaires"}},
	{Name: "Gestion de projet", Category: CategoryMethod, Aliases: []string{"project management", "chef de projet", "pilotage de projet"}},

	// Soft skills and spoken languages
	{Name: "Communication", Category: CategorySoft, Aliases: []string{"aisance relationnelle"}},
	{Name: "Leadership", Category: CategorySoft, Aliases: []string{"management d'equipe", "encadrement"}},
	{Name: "Anglais", Category: CategoryLanguages, Aliases: []string{"english", "anglais courant", "anglais professionnel"}},
	{Name: "Espagnol", Category: CategoryLanguages, Aliases: []string{"spanish"}},
	{Name: "Allemand", Category: CategoryLanguages, Aliases: []string{"german"}},
}

// Dictionary returns a copy of the built-in skill dictionary.
func Dictionary() []Entry {
	out := make([]Entry, len(dictionary))
	copy(out, dictionary)
	return out
}
