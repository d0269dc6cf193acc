// Package decexpr implements an infix calculator over arbitrary-precision
// decimals.
//
// Expressions are written the way a calculator expects them: "2+3*4" is 14,
// "2^3^2" is 2^(3^2), and "-3+5" is 2, because a minus sign directly before a
// digit is a sign wherever a binary minus could not appear. Functions take
// parenthesized argument lists, as in "SQRT(a^2+b^2)" or "ATAN(1)".
// Function and variable names are case-insensitive.
//
// Each Expression carries its own operators, functions, and variables, which
// may be extended with AddOperator, AddFunction, and Set. Results round to
// Scale decimal places. Division and the circular functions and their inverses
// are correct to all Scale places; SIN, COS, and TAN reject arguments of
// magnitude 1e50 or more. Fractional powers, logarithms, EXP, and the
// hyperbolic functions are computed in binary floating point and keep about
// 40 significant digits, so very large results have fewer correct places.
//
// Errors fall into three kinds. Syntax errors are found before anything is
// evaluated. Semantic errors come from names that are neither declared nor
// numbers, and are reported when the part of the expression using them is
// evaluated. Arithmetic errors, like division by zero, mean the expression is
// undefined at the current variable values. Compile uses the distinction to
// reject invalid formulas once while letting individual points be undefined.
package decexpr
