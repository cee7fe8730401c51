package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryResolve 确认原始后缀清单全部可识别，且共享方言的语言指向同一个描述符。
func TestRegistryResolve(t *testing.T) {
	registry := NewRegistry()

	requiredExtensions := []string{
		"rs", "js", "ts", "py", "java", "c", "cpp", "h", "html", "css", "go", "rb", "php", "swift",
		"lua", "cs", "xml", "kt", "jsx", "tsx", "scss", "less", "dart", "m", "mm", "vue",
		"kts", "sql", "sh", "yaml", "toml", "bat", "md", "jsonc",
	}
	for _, extension := range requiredExtensions {
		_, ok := registry.Resolve(extension)
		assert.True(t, ok, "missing language for extension %s", extension)
	}

	goLang, ok := registry.Resolve("go")
	require.True(t, ok)
	rustLang, ok := registry.Resolve("rs")
	require.True(t, ok)
	assert.Equal(t, "Go", goLang.Name)
	assert.Same(t, goLang.Dialect, rustLang.Dialect)

	lua, ok := registry.Resolve("lua")
	require.True(t, ok)
	assert.Equal(t, DialectLua, lua.Dialect.Kind)
}

// TestRegistryResolveIsExact 验证查找不做任何规范化。
func TestRegistryResolveIsExact(t *testing.T) {
	registry := NewRegistry()

	for _, extension := range []string{"GO", ".go", "", "txt", "go "} {
		_, ok := registry.Resolve(extension)
		assert.False(t, ok, "unexpected match for %q", extension)
	}
}

func TestRegistryLanguages(t *testing.T) {
	registry := NewRegistry()
	descriptors := registry.Languages()

	require.NotEmpty(t, descriptors)
	for i := 1; i < len(descriptors); i++ {
		assert.Less(t, descriptors[i-1].Name, descriptors[i].Name)
	}

	assert.Equal(t, []string{"cc", "cpp", "cxx", "hh", "hpp", "hxx"}, registry.ExtensionsForLanguage("C++"))
	assert.Nil(t, registry.ExtensionsForLanguage("Cobol"))
}

// TestRegistryExtensionsAreUnique 防止同一后缀被两个语言重复注册。
func TestRegistryExtensionsAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, language := range builtinLanguages() {
		for _, extension := range language.Extensions {
			owner, dup := seen[extension]
			assert.False(t, dup, "extension %s registered by %s and %s", extension, owner, language.Name)
			seen[extension] = language.Name
		}
	}
}

func TestRegistryByName(t *testing.T) {
	registry := NewRegistry()

	language, ok := registry.ByName("python")
	require.True(t, ok)
	assert.Equal(t, "Python", language.Name)

	language, ok = registry.ByName("C#")
	require.True(t, ok)
	assert.Equal(t, []string{"cs"}, language.Extensions)

	_, ok = registry.ByName("Cobol")
	assert.False(t, ok)
}

func TestDialectKindString(t *testing.T) {
	assert.Equal(t, "c-like", DialectCLike.String())
	assert.Equal(t, "batch", DialectBatch.String())
	assert.Equal(t, "unknown", DialectKind(200).String())

	for _, descriptor := range NewRegistry().Languages() {
		assert.NotEqual(t, "unknown", descriptor.Dialect, descriptor.Name)
		if descriptor.Name == "Vue" {
			assert.Equal(t, "markup", descriptor.Dialect)
			assert.Contains(t, descriptor.Note, "<script>")
		}
	}
}
