package crew

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"python def", "def greet(name):\n    return f'hi {name}'", LangPython},
		{"python import", "import os\n\nprint(os.getcwd())", LangPython},
		{"javascript function", "function add(a, b) {\n  return a + b;\n}", LangJavaScript},
		{"javascript arrow", "const add = (a, b) => a + b;", LangJavaScript},
		{"typescript", "function add(a: number, b: number): number {\n  return a + b;\n}", LangTypeScript},
		{"java", "public class Main {\n  public static void main(String[] args) {}\n}", LangJava},
		{"java import", "import java.util.List;\n\nclass A {}", LangJava},
		{"go", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}", LangGo},
		{"rust", "fn main() {\n    let mut x = 1;\n    println!(\"{}\", x);\n}", LangRust},
		{"csharp", "using System;\n\nnamespace Demo {\n  public class P { static void Main(string[] args) {} }\n}", LangCSharp},
		{"cpp", "#include <iostream>\n\nint main() {\n  std::cout << 1;\n}", LangCPP},
		{"ruby", "def greet(name)\n  puts \"hi #{name}\"\nend", LangRuby},
		{"unknown falls back to python", "SELECT 1;", LangPython},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.code); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode string
		wantLang string
	}{
		{"plain keeps indentation", "  x = 1\n", "  x = 1", ""},
		{"leading blank lines dropped", "\n  \n    return x\n\n", "    return x", ""},
		{"fenced with tag", "```python\nx = 1\n```", "x = 1", LangPython},
		{"fenced alias", "```ts\nlet x: number = 1\n```", "let x: number = 1", LangTypeScript},
		{"fenced no tag", "```\nx = 1\n```", "x = 1", ""},
		{"unknown tag kept", "```bash\necho hi\n```", "echo hi", "bash"},
		{"two fences left alone", "```py\na\n```\ntext\n```py\nb\n```", "```py\na\n```\ntext\n```py\nb\n```", ""},
		{"prose before fence left alone", "Here:\n```py\na\n```", "Here:\n```py\na\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, lang := ExtractCode(tt.raw)
			if code != tt.wantCode || lang != tt.wantLang {
				t.Errorf("ExtractCode() = (%q, %q), want (%q, %q)", code, lang, tt.wantCode, tt.wantLang)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	for in, want := range map[string]string{"Py": LangPython, "golang": LangGo, "C#": LangCSharp, "c++": LangCPP, "": ""} {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
