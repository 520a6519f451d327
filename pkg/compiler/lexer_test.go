package compiler

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantErr  bool
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Basic Tokens",
			input: "+ - * / = == != < <= > >= ; , : { } ( ) [ ]",
			expected: []Token{
				{Type: PLUS, Lexeme: "+", Line: 1},
				{Type: MINUS, Lexeme: "-", Line: 1},
				{Type: STAR, Lexeme: "*", Line: 1},
				{Type: SLASH, Lexeme: "/", Line: 1},
				{Type: ASSIGN, Lexeme: "=", Line: 1},
				{Type: EQUALS, Lexeme: "==", Line: 1},
				{Type: NOT_EQ, Lexeme: "!=", Line: 1},
				{Type: LESS, Lexeme: "<", Line: 1},
				{Type: LESS_EQ, Lexeme: "<=", Line: 1},
				{Type: GREATER, Lexeme: ">", Line: 1},
				{Type: GREATER_EQ, Lexeme: ">=", Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: COMMA, Lexeme: ",", Line: 1},
				{Type: COLON, Lexeme: ":", Line: 1},
				{Type: LBRACE, Lexeme: "{", Line: 1},
				{Type: RBRACE, Lexeme: "}", Line: 1},
				{Type: LPAREN, Lexeme: "(", Line: 1},
				{Type: RPAREN, Lexeme: ")", Line: 1},
				{Type: LBRACKET, Lexeme: "[", Line: 1},
				{Type: RBRACKET, Lexeme: "]", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "int float if else while do for return switch case default break variableName _under_score",
			expected: []Token{
				{Type: INT, Lexeme: "int", Line: 1},
				{Type: FLOAT, Lexeme: "float", Line: 1},
				{Type: IF, Lexeme: "if", Line: 1},
				{Type: ELSE, Lexeme: "else", Line: 1},
				{Type: WHILE, Lexeme: "while", Line: 1},
				{Type: DO, Lexeme: "do", Line: 1},
				{Type: FOR, Lexeme: "for", Line: 1},
				{Type: RETURN, Lexeme: "return", Line: 1},
				{Type: SWITCH, Lexeme: "switch", Line: 1},
				{Type: CASE, Lexeme: "case", Line: 1},
				{Type: DEFAULT, Lexeme: "default", Line: 1},
				{Type: BREAK, Lexeme: "break", Line: 1},
				{Type: IDENTIFIER, Lexeme: "variableName", Line: 1},
				{Type: IDENTIFIER, Lexeme: "_under_score", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Numbers",
			input: "123 0 3.14 0.5",
			expected: []Token{
				{Type: INT_LIT, Lexeme: "123", Line: 1},
				{Type: INT_LIT, Lexeme: "0", Line: 1},
				{Type: FLOAT_LIT, Lexeme: "3.14", Line: 1},
				{Type: FLOAT_LIT, Lexeme: "0.5", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Line comments",
			input: "int a; // ignore this\nfloat b;",
			expected: []Token{
				{Type: INT, Lexeme: "int", Line: 1},
				{Type: IDENTIFIER, Lexeme: "a", Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: FLOAT, Lexeme: "float", Line: 2},
				{Type: IDENTIFIER, Lexeme: "b", Line: 2},
				{Type: SEMICOLON, Lexeme: ";", Line: 2},
				{Type: EOF, Lexeme: "", Line: 2},
			},
		},
		{
			name:  "Block comments span lines",
			input: "int /* a\nmulti\nline */ a;",
			expected: []Token{
				{Type: INT, Lexeme: "int", Line: 1},
				{Type: IDENTIFIER, Lexeme: "a", Line: 3},
				{Type: SEMICOLON, Lexeme: ";", Line: 3},
				{Type: EOF, Lexeme: "", Line: 3},
			},
		},
		{
			name:    "Unterminated block comment",
			input:   "int a; /* never closed",
			wantErr: true,
		},
		{
			name:    "Illegal character",
			input:   "int a $ b;",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lex(%q): expected an error, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lex(%q): unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}
