package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnified_Equal(t *testing.T) {
	assert.Empty(t, Unified("A.cs", "class A { }\n", "class A { }\n", DefaultContext))
}

func TestUnified_Insertion(t *testing.T) {
	got := Unified("A.cs",
		"class A { }\n",
		"/// <summary>\n/// The A class.\n/// </summary>\nclass A { }\n",
		DefaultContext)

	assert.Equal(t, `--- a/A.cs
+++ b/A.cs
@@ -1 +1,4 @@
+/// <summary>
+/// The A class.
+/// </summary>
 class A { }
`, got)
}

func TestUnified_SeparateHunks(t *testing.T) {
	oldText := "class A { }\n\n1\n2\n3\n4\n5\n6\n7\n8\n\nclass B { }\n"
	newText := "/// A\nclass A { }\n\n1\n2\n3\n4\n5\n6\n7\n8\n\n/// B\nclass B { }\n"

	got := Unified("X.cs", oldText, newText, 1)
	assert.Equal(t, `--- a/X.cs
+++ b/X.cs
@@ -1 +1,2 @@
+/// A
 class A { }
@@ -11,2 +12,3 @@
 
+/// B
 class B { }
`, got)
}

func TestUnified_CRLFAndEmptyLines(t *testing.T) {
	got := Unified("W.cs", "\r\nclass W { }\r\n", "\r\n/// W\r\nclass W { }\r\n", 0)
	assert.Equal(t, "--- a/W.cs\n+++ b/W.cs\n@@ -1,0 +2 @@\n+/// W\n", got)
}
