// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testvectors holds the message literals shared by the known-answer
// tests of the digest packages.
package testvectors

// Messages used by the known-answer tests. Their lengths are chosen to land
// on different offsets within a block.
const (
	// ABC is 3 bytes.
	ABC = "abc"

	// NequeShort is 94 bytes.
	NequeShort = "Neque porro quisquam est qui dolorem ipsum quia dolor sit amet, consectetur, adipisci velit..."

	// LoremIpsum is 2869 bytes, spanning many blocks.
	LoremIpsum = `Lorem ipsum dolor sit amet, consectetur adipiscing elit. Mauris magna eros, accumsan vitae malesuada eu, suscipit tincidunt lectus. Vivamus quam odio, dapibus vitae dignissim sed, eleifend et libero. Suspendisse potenti. Ut elementum orci consequat feugiat tincidunt. Sed molestie hendrerit risus a scelerisque. Nullam ut semper magna. Maecenas nisl libero, fermentum quis nisi posuere, semper euismod metus. Duis accumsan lectus non justo pulvinar condimentum. Integer interdum nisi diam, a luctus urna molestie quis. Vestibulum auctor volutpat luctus. Sed sodales vitae erat at scelerisque. Cras eu metus ut elit efficitur sodales sed ac mauris. Cras et maximus arcu. Donec quis sagittis nunc. Integer pretium, arcu nec efficitur mollis, neque dolor pretium mauris, nec accumsan felis libero vel lacus. Maecenas laoreet a est et dapibus. Sed eget leo interdum, vestibulum justo ultrices, fringilla neque. Nulla et mi libero. Aenean bibendum pretium quam vel lacinia. Donec tincidunt leo eget ornare efficitur. Nulla at convallis libero. Morbi nulla tellus, commodo at mi ac, ultricies interdum sapien. Vestibulum imperdiet vel mauris in euismod. Nam blandit finibus consequat. Phasellus quis ornare velit. Nunc ex mi, condimentum id scelerisque quis, pellentesque id lectus. Donec ac risus finibus, mollis dolor sed, sagittis ex. Pellentesque nisl sapien, pellentesque quis condimentum vitae, volutpat at eros. Vivamus suscipit libero quis mi mollis dictum. Praesent id nisl elementum, luctus purus eu, dictum sem. Sed ac condimentum diam, vitae semper lectus. Vestibulum ante ipsum primis in faucibus orci luctus et ultrices posuere cubilia Curae; Quisque non tellus lobortis, ornare urna at, iaculis lacus. Ut rhoncus, justo auctor vulputate ultricies, tortor dolor commodo est, at tincidunt tortor mauris in libero. Proin convallis mauris eget lacus placerat venenatis. Sed maximus enim at nunc rutrum, at elementum quam congue. Ut euismod lacus massa, ut consectetur augue vulputate vitae. Suspendisse tempor pretium urna, sit amet cursus ligula faucibus in. Quisque gravida quam sodales justo finibus, et eleifend purus convallis. Aenean a pellentesque felis, ac vehicula libero. Suspendisse dictum non quam a congue. Etiam scelerisque, nunc vitae dictum vestibulum, metus ligula bibendum ligula, eget tempus lectus massa id velit. Duis eu aliquet risus. Aenean aliquet, velit in facilisis fringilla, orci leo gravida augue, non consectetur enim leo eget leo. Phasellus lorem augue, sollicitudin sed tempus quis, finibus eget justo. Cras arcu nisi, viverra vitae ullamcorper tincidunt, interdum vel urna. Suspendisse potenti. Nunc tempus magna eu dui consectetur semper. Maecenas iaculis magna eget rhoncus porttitor. Ut tempor pharetra odio et dignissim. Maecenas facilisis, velit eu feugiat maximus, nunc sem suscipit eros, vitae mollis magna arcu quis tortor.`

	// NequeBlock is 64 bytes, exactly one 64-byte block.
	NequeBlock = "Neque porro quisquam est qui dolorem ipsum quia dolor sit amet, "

	// NequeSixty is 60 bytes, too long for the length field to share the final block.
	NequeSixty = "Neque porro quisquam est qui dolorem ipsum quia dolor sit am"

	// EnglishHistory is 1530 bytes of UTF-8.
	EnglishHistory = `English has developed over the course of more than 1,400 years. The earliest forms of English, a set of Anglo-Frisian dialects brought to Great Britain by Anglo-Saxon settlers in the fifth century, are called Old English. Middle English began in the late 11th century with the Norman conquest of England, and was a period in which the language was influenced by French.[9] Early Modern English began in the late 15th century with the introduction of the printing press to London and the King James Bible, and the start of the Great Vowel Shift.[10] Through the worldwide influence of the British Empire, modern English spread around the world from the 17th to mid-20th centuries. Through all types of printed and electronic media, as well as the emergence of the United States as a global superpower, English has become the leading language of international discourse and the lingua franca in many regions and in professional contexts such as science, navigation, and law.[11] Modern English has little inflection compared with many other languages, and relies more on auxiliary verbs and word order for the expression of complex tenses, aspect and mood, as well as passive constructions, interrogatives and some negation. Despite noticeable variation among the accents and dialects of English used in different countries and regions – in terms of phonetics and phonology, and sometimes also vocabulary, grammar and spelling – English-speakers from around the world are able to communicate with one another with relative ease.`
)

// Message is a named test message.
type Message struct {
	Name string
	Text string
}

// All returns every message including the empty one.
func All() []Message {
	return []Message{
		{"empty", ""},
		{"abc", ABC},
		{"neque-94", NequeShort},
		{"lorem-ipsum", LoremIpsum},
		{"neque-64", NequeBlock},
		{"neque-60", NequeSixty},
		{"english-history", EnglishHistory},
	}
}
