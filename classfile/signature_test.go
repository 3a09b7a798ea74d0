package classfile

import "testing"

func TestParseClassSignature(t *testing.T) {
	cs, err := ParseClassSignature("<K:Ljava/lang/Object;V::Ljava/lang/Comparable<TV;>;>Ljava/util/AbstractMap<TK;TV;>;Ljava/util/Map<TK;TV;>;")
	if err != nil {
		t.Fatalf("ParseClassSignature: %v", err)
	}
	if len(cs.TypeParameters) != 2 {
		t.Fatalf("got %d type parameters, want 2", len(cs.TypeParameters))
	}
	if cs.TypeParameters[0].Name != "K" || cs.TypeParameters[0].Bounds[0].ClassName != "java/lang/Object" {
		t.Errorf("K = %+v", cs.TypeParameters[0])
	}
	v := cs.TypeParameters[1]
	if v.Name != "V" || len(v.Bounds) != 1 || v.Bounds[0].String() != "java.lang.Comparable<V>" {
		t.Errorf("V = %+v", v)
	}
	if got := cs.Superclass.String(); got != "java.util.AbstractMap<K,V>" {
		t.Errorf("Superclass = %q", got)
	}
	if len(cs.Interfaces) != 1 || cs.Interfaces[0].String() != "java.util.Map<K,V>" {
		t.Errorf("Interfaces = %v", cs.Interfaces)
	}
}

func TestParseMethodSignature(t *testing.T) {
	tests := []struct {
		sig        string
		params     []string
		ret        string
		throws     []string
		typeParams int
	}{
		{
			sig:    "(Ljava/util/List<+Ljava/lang/Number;>;[TT;I)V",
			params: []string{"java.util.List<? extends java.lang.Number>", "T[]", "int"},
		},
		{
			sig:        "<T:Ljava/lang/Object;>(Ljava/util/Map$Entry<TT;*>;)TT;^Ljava/io/IOException;^TX;",
			params:     []string{"java.util.Map$Entry<T,?>"},
			ret:        "T",
			throws:     []string{"java.io.IOException", "X"},
			typeParams: 1,
		},
		{
			sig:    "(Lp/Outer<TT;>.Inner<-TU;>;)[[J",
			params: []string{"p.Outer$Inner<? super U>"},
			ret:    "long[][]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			ms, err := ParseMethodSignature(tt.sig)
			if err != nil {
				t.Fatalf("ParseMethodSignature: %v", err)
			}
			if len(ms.TypeParameters) != tt.typeParams {
				t.Errorf("got %d type parameters, want %d", len(ms.TypeParameters), tt.typeParams)
			}
			if len(ms.Parameters) != len(tt.params) {
				t.Fatalf("got %d parameters, want %d", len(ms.Parameters), len(tt.params))
			}
			for i, p := range ms.Parameters {
				if got := p.String(); got != tt.params[i] {
					t.Errorf("Parameters[%d] = %q, want %q", i, got, tt.params[i])
				}
			}
			ret := ""
			if ms.Return != nil {
				ret = ms.Return.String()
			}
			if ret != tt.ret {
				t.Errorf("Return = %q, want %q", ret, tt.ret)
			}
			if len(ms.Throws) != len(tt.throws) {
				t.Fatalf("got %d throws, want %d", len(ms.Throws), len(tt.throws))
			}
			for i, th := range ms.Throws {
				if got := th.String(); got != tt.throws[i] {
					t.Errorf("Throws[%d] = %q, want %q", i, got, tt.throws[i])
				}
			}
		})
	}
}

func TestParseSignatureErrors(t *testing.T) {
	for _, sig := range []string{"(Ljava/lang/String", "<T>()V", "(Q)V"} {
		if _, err := ParseMethodSignature(sig); err == nil {
			t.Errorf("ParseMethodSignature(%q): expected error", sig)
		}
	}
	if _, err := ParseFieldSignature("TT;extra"); err == nil {
		t.Error("ParseFieldSignature: expected error for trailing input")
	}
}
