package languages

import (
	"sort"
	"strings"
)

// Language 把一组后缀绑定到某个语言名和注释方言。
// 多个语言可以共享同一个方言（例如 C、Go、Rust 都是 c-like）。
type Language struct {
	Name       string
	Extensions []string
	Dialect    *Dialect
	// Note 记录该语言统计时的已知近似，会显示在 language 命令中。
	Note string
}

// LanguageDescriptor 用于对外展示语言、方言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Dialect    string
	Extensions []string
	Note       string
}

// Registry 是静态的后缀 -> 语言查找表，创建后只读，可被多个 worker 并发读取。
type Registry struct {
	languages  []*Language
	langByExt  map[string]*Language
	langByName map[string]*Language
}

// builtinLanguages 返回内置语言表。后缀不带点号，且统一为小写。
func builtinLanguages() []*Language {
	return []*Language{
		{Name: "C", Extensions: []string{"c", "h"}, Dialect: cLikeDialect},
		{Name: "C++", Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}, Dialect: cLikeDialect},
		{Name: "C#", Extensions: []string{"cs"}, Dialect: cLikeDialect},
		{Name: "Go", Extensions: []string{"go"}, Dialect: cLikeDialect},
		{Name: "Rust", Extensions: []string{"rs"}, Dialect: cLikeDialect},
		{Name: "Java", Extensions: []string{"java"}, Dialect: cLikeDialect},
		{Name: "Kotlin", Extensions: []string{"kt", "kts"}, Dialect: cLikeDialect},
		{Name: "Swift", Extensions: []string{"swift"}, Dialect: cLikeDialect},
		{Name: "Dart", Extensions: []string{"dart"}, Dialect: cLikeDialect},
		{Name: "Objective-C", Extensions: []string{"m", "mm"}, Dialect: cLikeDialect},
		{Name: "JavaScript", Extensions: []string{"js", "jsx", "mjs", "cjs"}, Dialect: cLikeDialect},
		{Name: "TypeScript", Extensions: []string{"ts", "tsx"}, Dialect: cLikeDialect},
		{Name: "JSON with Comments", Extensions: []string{"jsonc"}, Dialect: cLikeDialect},
		{Name: "SCSS", Extensions: []string{"scss"}, Dialect: cLikeDialect},
		{Name: "Less", Extensions: []string{"less"}, Dialect: cLikeDialect},
		{Name: "PHP", Extensions: []string{"php"}, Dialect: phpDialect},
		{Name: "Python", Extensions: []string{"py", "pyi"}, Dialect: pythonDialect},
		{Name: "Lua", Extensions: []string{"lua"}, Dialect: luaDialect},
		{Name: "HTML", Extensions: []string{"html", "htm"}, Dialect: markupDialect},
		{Name: "XML", Extensions: []string{"xml"}, Dialect: markupDialect},
		{
			Name:       "Vue",
			Extensions: []string{"vue"},
			Dialect:    markupDialect,
			Note:       "only <!-- --> comments; // and /* */ inside <script>/<style> count as code",
		},
		{Name: "Markdown", Extensions: []string{"md"}, Dialect: markupDialect},
		{Name: "CSS", Extensions: []string{"css"}, Dialect: cssDialect},
		{Name: "SQL", Extensions: []string{"sql"}, Dialect: sqlDialect},
		{Name: "Shell", Extensions: []string{"sh", "bash", "zsh"}, Dialect: hashDialect},
		{Name: "Ruby", Extensions: []string{"rb"}, Dialect: hashDialect},
		{Name: "YAML", Extensions: []string{"yaml", "yml"}, Dialect: hashDialect},
		{Name: "TOML", Extensions: []string{"toml"}, Dialect: hashDialect},
		{Name: "Batch", Extensions: []string{"bat", "cmd"}, Dialect: batchDialect},
	}
}

// NewRegistry 创建并注册所有内置语言。
func NewRegistry() *Registry {
	languages := builtinLanguages()

	registry := &Registry{
		languages:  languages,
		langByExt:  make(map[string]*Language),
		langByName: make(map[string]*Language, len(languages)),
	}

	for _, language := range languages {
		registry.langByName[language.Name] = language
		for _, ext := range language.Extensions {
			registry.langByExt[ext] = language
		}
	}

	return registry
}

// Resolve 按后缀（不带点号）查找语言。匹配大小写敏感，规范化由调用方负责。
func (r *Registry) Resolve(extension string) (*Language, bool) {
	language, ok := r.langByExt[extension]
	return language, ok
}

// Languages 返回已注册语言清单。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.languages))
	for _, language := range r.languages {
		result = append(result, LanguageDescriptor{
			Name:       language.Name,
			Dialect:    language.Dialect.Kind.String(),
			Extensions: sortedExtensions(language),
			Note:       language.Note,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ByName 按语言名查找，名称大小写不敏感。
func (r *Registry) ByName(name string) (*Language, bool) {
	if language, ok := r.langByName[name]; ok {
		return language, true
	}
	for _, language := range r.languages {
		if strings.EqualFold(language.Name, name) {
			return language, true
		}
	}
	return nil, false
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(name string) []string {
	language, ok := r.langByName[name]
	if !ok {
		return nil
	}
	return sortedExtensions(language)
}

func sortedExtensions(language *Language) []string {
	extensions := append([]string(nil), language.Extensions...)
	sort.Strings(extensions)
	return extensions
}
