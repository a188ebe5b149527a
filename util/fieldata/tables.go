/*
   Fieldata character tables.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/
package fieldata

// Character conversion tables.

// Fieldata code to ASCII.
var fieldataToASCII = [64]byte{
	/* 00 */ '@', '[', ']', '#', '^', ' ', 'A', 'B',
	/* 10 */ 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J',
	/* 20 */ 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R',
	/* 30 */ 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	/* 40 */ ')', '-', '+', '<', '=', '>', '&', '$',
	/* 50 */ '*', '(', '%', ':', '?', '!', ',', '\\',
	/* 60 */ '0', '1', '2', '3', '4', '5', '6', '7',
	/* 70 */ '8', '9', '\'', ';', '/', '.', '"', '_',
}

// ASCII to Fieldata, characters with no Fieldata code map to 077.
var asciiToFieldata = [128]uint8{
	/* Control */
	077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077,
	/* Control */
	077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077, 077,
	/*  sp    !    "    #    $    %    &    '    (    )    *    +    ,    -    .    / */
	005, 055, 076, 003, 047, 052, 046, 072, 051, 040, 050, 042, 056, 041, 075, 074,
	/*  0     1    2    3    4    5    6    7    8    9    :    ;    <    =    >    ? */
	060, 061, 062, 063, 064, 065, 066, 067, 070, 071, 053, 073, 043, 044, 045, 054,
	/*  @     A    B    C    D    E    F    G    H    I    J    K    L    M    N    O */
	000, 006, 007, 010, 011, 012, 013, 014, 015, 016, 017, 020, 021, 022, 023, 024,
	/*  P     Q    R    S    T    U    V    W    X    Y    Z    [    \    ]    ^    _ */
	025, 026, 027, 030, 031, 032, 033, 034, 035, 036, 037, 001, 057, 002, 004, 077,
	/*  `     a    b    c    d    e    f    g    h    i    j    k    l    m    n    o */
	077, 006, 007, 010, 011, 012, 013, 014, 015, 016, 017, 020, 021, 022, 023, 024,
	/*  p     q    r    s    t    u    v    w    x    y    z    {    |    }    ~  del */
	025, 026, 027, 030, 031, 032, 033, 034, 035, 036, 037, 077, 077, 077, 077, 077,
}
