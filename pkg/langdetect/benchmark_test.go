package langdetect

import (
	"testing"
)

func BenchmarkDetectC(b *testing.B) {
	code := []byte(`#include <stdio.h>

int main(void) {
    printf("hello\n");
    return 0;
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectPython(b *testing.B) {
	code := []byte(`def hello():
    print("hello")

if __name__ == "__main__":
    hello()`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectClassifierFallback(b *testing.B) {
	// No structural pattern fires here, so the statistical classifier runs.
	code := []byte(`x <- c(1, 2, 3)
mean(x)
plot(x)`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	code := []byte("")
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}
