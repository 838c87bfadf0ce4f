// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import "strings"

// htmlEscaper escapes text being rendered into HTML element content
// or double-quoted attribute values.
var htmlEscaper = strings.NewReplacer(
	`"`, "&quot;",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// htmlLinkEscaper escapes a URL being rendered into an href or src
// attribute, percent-encoding the bytes that cmark encodes.
var htmlLinkEscaper = strings.NewReplacer(
	`"`, "%22",
	"&", "&amp;",
	"'", "%27",
	"<", "%3C",
	">", "%3E",
	"\\", "%5C",
	" ", "%20",
	"`", "%60",
	"[", "%5B",
	"]", "%5D",
	"{", "%7B",
	"}", "%7D",
)

// namedEntity maps an HTML named character reference, spelled with
// its ampersand and semicolon, to its replacement text.
// The table is a bounded subset of the HTML5 list covering the
// references that occur in ordinary prose; references outside the
// table are left as literal text. Replacements may be more than one
// character (&amp;NotEqual; style references are not included).
var namedEntity = map[string]string{
	"&AElig;":    "Æ",
	"&Aacute;":   "Á",
	"&Acirc;":    "Â",
	"&Agrave;":   "À",
	"&Alpha;":    "Α",
	"&Aring;":    "Å",
	"&Atilde;":   "Ã",
	"&Auml;":     "Ä",
	"&Beta;":     "Β",
	"&Ccedil;":   "Ç",
	"&Dagger;":   "‡",
	"&Delta;":    "Δ",
	"&ETH;":      "Ð",
	"&Eacute;":   "É",
	"&Ecirc;":    "Ê",
	"&Egrave;":   "È",
	"&Epsilon;":  "Ε",
	"&Eta;":      "Η",
	"&Euml;":     "Ë",
	"&Gamma;":    "Γ",
	"&Iacute;":   "Í",
	"&Icirc;":    "Î",
	"&Igrave;":   "Ì",
	"&Iota;":     "Ι",
	"&Iuml;":     "Ï",
	"&Kappa;":    "Κ",
	"&Lambda;":   "Λ",
	"&Mu;":       "Μ",
	"&Ntilde;":   "Ñ",
	"&Nu;":       "Ν",
	"&OElig;":    "Œ",
	"&Oacute;":   "Ó",
	"&Ocirc;":    "Ô",
	"&Ograve;":   "Ò",
	"&Omega;":    "Ω",
	"&Omicron;":  "Ο",
	"&Oslash;":   "Ø",
	"&Otilde;":   "Õ",
	"&Ouml;":     "Ö",
	"&Phi;":      "Φ",
	"&Pi;":       "Π",
	"&Prime;":    "″",
	"&Psi;":      "Ψ",
	"&Rho;":      "Ρ",
	"&Scaron;":   "Š",
	"&Sigma;":    "Σ",
	"&THORN;":    "Þ",
	"&Tau;":      "Τ",
	"&Theta;":    "Θ",
	"&Uacute;":   "Ú",
	"&Ucirc;":    "Û",
	"&Ugrave;":   "Ù",
	"&Upsilon;":  "Υ",
	"&Uuml;":     "Ü",
	"&Xi;":       "Ξ",
	"&Yacute;":   "Ý",
	"&Yuml;":     "Ÿ",
	"&Zeta;":     "Ζ",
	"&aacute;":   "á",
	"&acirc;":    "â",
	"&acute;":    "´",
	"&aelig;":    "æ",
	"&agrave;":   "à",
	"&alpha;":    "α",
	"&amp;":      "&",
	"&and;":      "∧",
	"&ang;":      "∠",
	"&apos;":     "'",
	"&aring;":    "å",
	"&asymp;":    "≈",
	"&atilde;":   "ã",
	"&auml;":     "ä",
	"&bdquo;":    "„",
	"&beta;":     "β",
	"&brvbar;":   "¦",
	"&bull;":     "•",
	"&cap;":      "∩",
	"&ccedil;":   "ç",
	"&cedil;":    "¸",
	"&cent;":     "¢",
	"&chi;":      "χ",
	"&circ;":     "ˆ",
	"&clubs;":    "♣",
	"&cong;":     "≅",
	"&copy;":     "©",
	"&cup;":      "∪",
	"&curren;":   "¤",
	"&dagger;":   "†",
	"&darr;":     "↓",
	"&deg;":      "°",
	"&delta;":    "δ",
	"&diams;":    "♦",
	"&divide;":   "÷",
	"&eacute;":   "é",
	"&ecirc;":    "ê",
	"&egrave;":   "è",
	"&empty;":    "∅",
	"&emsp;":     " ",
	"&ensp;":     " ",
	"&epsilon;":  "ε",
	"&equiv;":    "≡",
	"&eta;":      "η",
	"&eth;":      "ð",
	"&euml;":     "ë",
	"&euro;":     "€",
	"&exist;":    "∃",
	"&fnof;":     "ƒ",
	"&forall;":   "∀",
	"&frac12;":   "½",
	"&frac14;":   "¼",
	"&frac34;":   "¾",
	"&frasl;":    "⁄",
	"&gamma;":    "γ",
	"&ge;":       "≥",
	"&gt;":       ">",
	"&harr;":     "↔",
	"&hearts;":   "♥",
	"&hellip;":   "…",
	"&iacute;":   "í",
	"&icirc;":    "î",
	"&iexcl;":    "¡",
	"&igrave;":   "ì",
	"&infin;":    "∞",
	"&int;":      "∫",
	"&iota;":     "ι",
	"&iquest;":   "¿",
	"&isin;":     "∈",
	"&iuml;":     "ï",
	"&kappa;":    "κ",
	"&lambda;":   "λ",
	"&lang;":     "⟨",
	"&laquo;":    "«",
	"&larr;":     "←",
	"&lceil;":    "⌈",
	"&ldquo;":    "“",
	"&le;":       "≤",
	"&lfloor;":   "⌊",
	"&lowast;":   "∗",
	"&loz;":      "◊",
	"&lrm;":      "‎",
	"&lsaquo;":   "‹",
	"&lsquo;":    "‘",
	"&lt;":       "<",
	"&macr;":     "¯",
	"&mdash;":    "—",
	"&micro;":    "µ",
	"&middot;":   "·",
	"&minus;":    "−",
	"&mu;":       "μ",
	"&nabla;":    "∇",
	"&nbsp;":     " ",
	"&ndash;":    "–",
	"&ne;":       "≠",
	"&ni;":       "∋",
	"&not;":      "¬",
	"&notin;":    "∉",
	"&nsub;":     "⊄",
	"&ntilde;":   "ñ",
	"&nu;":       "ν",
	"&oacute;":   "ó",
	"&ocirc;":    "ô",
	"&oelig;":    "œ",
	"&ograve;":   "ò",
	"&oline;":    "‾",
	"&omega;":    "ω",
	"&omicron;":  "ο",
	"&oplus;":    "⊕",
	"&or;":       "∨",
	"&ordf;":     "ª",
	"&ordm;":     "º",
	"&oslash;":   "ø",
	"&otilde;":   "õ",
	"&otimes;":   "⊗",
	"&ouml;":     "ö",
	"&para;":     "¶",
	"&part;":     "∂",
	"&permil;":   "‰",
	"&perp;":     "⊥",
	"&phi;":      "φ",
	"&pi;":       "π",
	"&plusmn;":   "±",
	"&pound;":    "£",
	"&prime;":    "′",
	"&prod;":     "∏",
	"&prop;":     "∝",
	"&psi;":      "ψ",
	"&quot;":     "\"",
	"&radic;":    "√",
	"&rang;":     "⟩",
	"&raquo;":    "»",
	"&rarr;":     "→",
	"&rceil;":    "⌉",
	"&rdquo;":    "”",
	"&reg;":      "®",
	"&rfloor;":   "⌋",
	"&rho;":      "ρ",
	"&rlm;":      "‏",
	"&rsaquo;":   "›",
	"&rsquo;":    "’",
	"&sbquo;":    "‚",
	"&scaron;":   "š",
	"&sdot;":     "⋅",
	"&sect;":     "§",
	"&shy;":      "­",
	"&sigma;":    "σ",
	"&sigmaf;":   "ς",
	"&sim;":      "∼",
	"&spades;":   "♠",
	"&sub;":      "⊂",
	"&sube;":     "⊆",
	"&sum;":      "∑",
	"&sup1;":     "¹",
	"&sup2;":     "²",
	"&sup3;":     "³",
	"&sup;":      "⊃",
	"&supe;":     "⊇",
	"&szlig;":    "ß",
	"&tau;":      "τ",
	"&there4;":   "∴",
	"&theta;":    "θ",
	"&thetasym;": "ϑ",
	"&thinsp;":   " ",
	"&thorn;":    "þ",
	"&tilde;":    "˜",
	"&times;":    "×",
	"&trade;":    "™",
	"&uacute;":   "ú",
	"&uarr;":     "↑",
	"&ucirc;":    "û",
	"&ugrave;":   "ù",
	"&uml;":      "¨",
	"&upsilon;":  "υ",
	"&uuml;":     "ü",
	"&xi;":       "ξ",
	"&yacute;":   "ý",
	"&yen;":      "¥",
	"&yuml;":     "ÿ",
	"&zeta;":     "ζ",
	"&zwj;":      "‍",
	"&zwnj;":     "‌",
}
