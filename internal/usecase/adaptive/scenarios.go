package adaptive

import "github.com/atlaslingo/darlingo/internal/entity"

// conversationScenarios is the fixed roleplay catalog per CEFR level.
// A level with no scenarios falls back to the lowest defined level.
var conversationScenarios = map[entity.Level][]entity.ConversationScenario{
	entity.LevelA1: {
		{
			Context: "You meet someone new and want to introduce yourself.",
			ScenarioPrompt: "The student is at a social gathering and meets a Moroccan person for the " +
				"first time. They need to greet them, introduce themselves (name, where " +
				"they're from), and ask the other person's name. Keep it very simple.",
			TargetVocabulary: []string{
				"salam (hello)",
				"labas (how are you)",
				"smiyti (my name is)",
				"ana mn (I am from)",
				"mtsharfin (nice to meet you)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "سلام! لاباس عليك؟ أنا كريم.",
				Latin:   "Salam! Labas 3lik? Ana Karim.",
				English: "Hello! How are you? I'm Karim.",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "سلام! لاباس الحمد لله", Latin: "Salam! Labas lhamdulah", English: "Hello! I'm fine, thank God"},
				{Arabic: "أهلا! سميتي...", Latin: "Ahla! Smiyti...", English: "Hi! My name is..."},
			},
		},
		{
			Context: "You're ordering tea at a traditional Moroccan café.",
			ScenarioPrompt: "The student walks into a Moroccan café (qahwa) and needs to order a " +
				"drink. The waiter greets them. Practice ordering atay (tea), qahwa " +
				"(coffee), and using 3afak (please) and choukran (thank you).",
			TargetVocabulary: []string{
				"atay (tea)",
				"qahwa (coffee)",
				"3afak (please)",
				"choukran (thank you)",
				"b na3na3 (with mint)",
				"bla sokkar (without sugar)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "مرحبا! أهلا بيك فالقهوة ديالنا. شنو بغيتي؟",
				Latin:   "Merhba! Ahla bik f l'qahwa dyalna. Chnou bghiti?",
				English: "Welcome! Welcome to our café. What would you like?",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "أتاي بالنعناع عافاك", Latin: "Atay b na3na3 3afak", English: "Mint tea please"},
				{Arabic: "قهوة عافاك", Latin: "Qahwa 3afak", English: "Coffee please"},
			},
		},
	},
	entity.LevelA2: {
		{
			Context: "You're shopping at a Moroccan souk and want to buy souvenirs.",
			ScenarioPrompt: "The student is browsing a stall at the souk and wants to buy a tajine " +
				"pot or a rug. They need to ask the price, negotiate politely, and " +
				"complete the purchase. Practice numbers, bchhal (how much), and ghali (expensive).",
			TargetVocabulary: []string{
				"bchhal (how much)",
				"ghali (expensive)",
				"rkhis (cheap)",
				"nqess chwiya (reduce a little)",
				"3jebni (I like it)",
				"khod (take)",
				"flous (money)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "مرحبا أ صاحبي! شوف هاد الطاجين، خدمة يدوية مزيانة بزاف!",
				Latin:   "Merhba a sahbi! Chouf had ttajin, khedma ydawiya mezyana bzzaf!",
				English: "Welcome my friend! Look at this tajine, very nice handmade work!",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "بشحال هاد الطاجين؟", Latin: "Bchhal had ttajin?", English: "How much is this tajine?"},
				{Arabic: "عجبني! واش عندك حوايج خرين؟", Latin: "3jebni! Wach 3ndek hwayej khrin?", English: "I like it! Do you have other things?"},
			},
		},
		{
			Context: "You're taking a taxi in Casablanca.",
			ScenarioPrompt: "The student needs to take a petit taxi in Casablanca. They need to " +
				"tell the driver where to go, ask about the price, and have a short " +
				"conversation during the ride.",
			TargetVocabulary: []string{
				"taxi (taxi)",
				"dini l (take me to)",
				"bchhal (how much)",
				"hna (here)",
				"temma (there)",
				"wqef hna (stop here)",
				"sir nishan (go straight)",
				"dour (turn)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "سلام خويا، فين غادي؟",
				Latin:   "Salam khouya, fin ghadi?",
				English: "Hello brother, where are you going?",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "ديني لمحطة كازا ڤوياجور عافاك", Latin: "Dini l mahatta Casa Voyageurs 3afak", English: "Take me to Casa Voyageurs station please"},
				{Arabic: "بشحال للمدينة القديمة؟", Latin: "Bchhal l l'mdina l'qdima?", English: "How much to the old town?"},
			},
		},
	},
	entity.LevelB1: {
		{
			Context: "You're discussing your weekend plans with a Moroccan friend.",
			ScenarioPrompt: "The student is chatting with a Moroccan friend about plans for the " +
				"weekend. They should discuss activities, suggest places to go, and " +
				"agree on a plan. Practice future tense (ghadi), expressing preferences, " +
				"and making suggestions.",
			TargetVocabulary: []string{
				"ghadi (going to)",
				"weekend (weekend)",
				"nmchiw l (let's go to)",
				"wach bghiti (do you want)",
				"fikra mezyana (good idea)",
				"ma3endich wqt (I don't have time)",
				"nta3mlou (let's do)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "سلام صاحبي! شنو غادي دير هاد الويكاند؟ بغيتي نديرو شي حاجة مع بعضياتنا؟",
				Latin:   "Salam sahbi! Chnou ghadi dir had l'weekend? Bghiti ndirou chi haja m3a b3diyatna?",
				English: "Hi friend! What are you going to do this weekend? Want to do something together?",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "فكرة مزيانة! نمشيو للبحر؟", Latin: "Fikra mezyana! Nmchiw l l'bher?", English: "Good idea! Shall we go to the beach?"},
				{Arabic: "مازال ماعرفتش. شنو كتقترح؟", Latin: "Mazal ma3reftch. Chnou katqtereh?", English: "I don't know yet. What do you suggest?"},
			},
		},
		{
			Context: "You're describing your family to a Moroccan colleague.",
			ScenarioPrompt: "The student is having a conversation with a Moroccan colleague at work " +
				"about their families. They should describe family members, talk about " +
				"what they do, and ask about the colleague's family.",
			TargetVocabulary: []string{
				"l'3a2ila (family)",
				"bba (father)",
				"mmi (mother)",
				"khouya (brother)",
				"khti (sister)",
				"wlad (children)",
				"khddam (works)",
				"kbir (big/old)",
				"sghir (small/young)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "سمعت بلي عندك عائلة كبيرة! بشحال خوتك؟",
				Latin:   "Sme3t blli 3ndek 3a2ila kbira! Bchhal khoutek?",
				English: "I heard you have a big family! How many siblings do you have?",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "عندي جوج خوت و وحدة الأخت", Latin: "3ndi jouj khout w wehda l'okht", English: "I have two brothers and one sister"},
				{Arabic: "إيه عائلتي كبيرة بزاف! و نتا؟", Latin: "Iyeh 3a2ilti kbira bzzaf! W nta?", English: "Yes my family is very big! And you?"},
			},
		},
	},
	entity.LevelB2: {
		{
			Context: "You're negotiating the price of a handmade rug at a Marrakech souk.",
			ScenarioPrompt: "The student is in an advanced negotiation at a rug shop in Marrakech. " +
				"The merchant is skilled and persuasive. The student must negotiate " +
				"firmly but politely, use idioms, and reach a fair price. This is a " +
				"realistic souk bargaining scenario.",
			TargetVocabulary: []string{
				"zerbia (rug)",
				"taman (price)",
				"akhir taman (final price)",
				"ma ymkenlich (I can't)",
				"hak l'flous (here's the money)",
				"radi n3tik (I'll give you)",
				"baraka men (enough of)",
				"3la slama (goodbye/deal done)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "هاد الزربية صوف خالص، خدمة فاسية أصيلة. تامنها أربعة ديال المليون.",
				Latin:   "Had zzerbia souf khales, khedma fasiya asila. Tamanha reb3a dyal l'melyoun.",
				English: "This rug is pure wool, authentic Fez craftsmanship. Its price is 4000 dirhams.",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "أربعة ديال المليون؟ غالية بزاف أ الحاج!", Latin: "Reb3a dyal l'melyoun? Ghalya bzzaf a l'haj!", English: "4000 dirhams? That's way too expensive!"},
				{Arabic: "مزيانة ولكن بغيت نشوف حوايج خرين قبل", Latin: "Mezyana walakin bghit nchouf hwayej khrin qbel", English: "It's nice but I want to see other things first"},
			},
		},
		{
			Context: "You're discussing Moroccan culture and traditions with a local.",
			ScenarioPrompt: "The student is having a deep conversation about Moroccan traditions " +
				"with a local friend, covering Ramadan, weddings, music (Gnawa, Chaabi), and food " +
				"culture. The conversation should be natural and use idioms, slang, " +
				"and complex sentence structures.",
			TargetVocabulary: []string{
				"taqalid (traditions)",
				"3adat (customs)",
				"l'3rss (wedding)",
				"ramdan (Ramadan)",
				"ftor (iftar/breaking fast)",
				"Gnawa (Gnawa music)",
				"sha3bi (popular/folk)",
				"l'ma3qoul (reasonable/proper)",
			},
			InitialMessage: entity.Phrase{
				Arabic:  "واش عمرك مشيتي لشي عرس مغربي؟ ما كاين والو بحالو فالدنيا!",
				Latin:   "Wach 3emrek mchiti l chi 3rss meghribi? Ma kayn walo bhalo f ddnya!",
				English: "Have you ever been to a Moroccan wedding? There's nothing like it in the world!",
			},
			InitialSuggestions: []entity.Phrase{
				{Arabic: "إيه مشيت مرة وحدة وعجبني بزاف! الموسيقى كانت خطيرة", Latin: "Iyeh mchit merra wehda w 3jebni bzzaf! L'mousiqa kanet khtira", English: "Yes I went once and loved it! The music was amazing"},
				{Arabic: "لا عمرني. شنو كيوقع فالعرس المغربي؟", Latin: "La 3emrni. Chnou kayw9e3 f l'3rss l'meghribi?", English: "Never. What happens at a Moroccan wedding?"},
			},
		},
	},
}

// scenariosForLevel resolves the catalog for a level through an ordered
// list of candidates: the requested level first, then the lowest level
// that has any scenarios.
func scenariosForLevel(level entity.Level) []entity.ConversationScenario {
	candidates := append([]entity.Level{level}, entity.Levels()...)
	for _, candidate := range candidates {
		if scenarios := conversationScenarios[candidate]; len(scenarios) > 0 {
			return scenarios
		}
	}
	return nil
}
