// Package i18n holds the English and Bengali string tables carried over
// from the original mobile app.
package i18n

import "tawbah_bot/internal/model"

// Strings is one language's translation table.
type Strings struct {
	DailyWisdom      string
	CleanTime        string
	Days             string
	Hours            string
	Mins             string
	TodaysPrayers    string
	SOSTitle         string
	SOSActions       []string
	SOSDone          string
	UpdatingContent  string
	ChatGreeting     string
	HourlyReminder   string
	PrayerReminder   string
	Locked           string
	Unlocked         string
	WrongPIN         string
	RecoveryOK       string
	RecoveryFail     string
	ChatCleared      string
	RelapseRecorded  string
	LanguageSwitched string
}

var tables = map[model.Language]Strings{
	model.LangEN: {
		DailyWisdom:      "Daily Wisdom",
		CleanTime:        "Clean Time",
		Days:             "DAYS",
		Hours:            "HRS",
		Mins:             "MINS",
		TodaysPrayers:    "Today's Prayers",
		SOSTitle:         "Does he not know that Allah sees?",
		SOSActions: []string{
			"Perform Wudu immediately (Cold water recommended).",
			"Change your environment. Go outside.",
			"Call a friend or sit with family.",
			"Recite 'Audhu billahi minash shaytanir rajeem'.",
			"Remember: The pleasure is fleeting, the regret is long.",
		},
		SOSDone:          "I am in control now, Alhamdulillah",
		UpdatingContent:  "Updating Content...",
		ChatGreeting:     "Assalamu Alaikum! I am here to provide spiritual guidance and support. How are you feeling today?",
		HourlyReminder:   "Hourly reminder",
		PrayerReminder:   "It is time for %s prayer.",
		Locked:           "Locked. Use /unlock <pin> to continue.",
		Unlocked:         "Unlocked. Assalamu Alaikum!",
		WrongPIN:         "Wrong PIN.",
		RecoveryOK:       "Answer accepted. Your PIN is %s.",
		RecoveryFail:     "That answer does not match.",
		ChatCleared:      "Chat history cleared.",
		RelapseRecorded:  "Recorded. Every return to Allah is a new beginning. Your streak restarts now.",
		LanguageSwitched: "Language set to English.",
	},
	model.LangBN: {
		DailyWisdom:      "দৈনিক প্রজ্ঞা",
		CleanTime:        "পবিত্র থাকার সময়",
		Days:             "দিন",
		Hours:            "ঘণ্টা",
		Mins:             "মিনিট",
		TodaysPrayers:    "আজকের নামাজ",
		SOSTitle:         "সে কি জানে না যে আল্লাহ দেখছেন?",
		SOSActions: []string{
			"অবিলম্বে ওযু করুন (ঠান্ডা পানি ব্যবহার করুন)।",
			"আপনার পরিবেশ পরিবর্তন করুন। বাইরে যান।",
			"বন্ধুকে কল করুন বা পরিবারের সাথে বসুন।",
			"পাঠ করুন 'আউযু বিল্লাহি মিনাশ শাইতানির রাজিম'।",
			"মনে রাখবেন: এই সুখ ক্ষণস্থায়ী, কিন্তু অনুশোচনা দীর্ঘ।",
		},
		SOSDone:          "আলহামদুলিল্লাহ, আমি এখন নিয়ন্ত্রণে আছি",
		UpdatingContent:  "নতুন তথ্য লোড হচ্ছে...",
		ChatGreeting:     "আসসালামু আলাইকুম! আপনার মনে কি কোনো দ্বিধা বা দুঃখ আছে? আমি এখানে আপনাকে সাহায্য করতে আছি।",
		HourlyReminder:   "ঘণ্টার অনুপ্রেরণা",
		PrayerReminder:   "%s নামাজের সময় হয়েছে।",
		Locked:           "লক করা আছে। /unlock <pin> ব্যবহার করুন।",
		Unlocked:         "আনলক হয়েছে। আসসালামু আলাইকুম!",
		WrongPIN:         "ভুল পিন।",
		RecoveryOK:       "উত্তর গৃহীত। আপনার পিন: %s",
		RecoveryFail:     "উত্তর মেলেনি।",
		ChatCleared:      "চ্যাট ইতিহাস মুছে ফেলা হয়েছে।",
		RelapseRecorded:  "লিপিবদ্ধ হয়েছে। আল্লাহর কাছে প্রতিটি প্রত্যাবর্তন একটি নতুন শুরু।",
		LanguageSwitched: "ভাষা বাংলায় সেট করা হয়েছে।",
	},
}

// T returns the string table for the given language, defaulting to English.
func T(lang model.Language) Strings {
	if s, ok := tables[lang]; ok {
		return s
	}
	return tables[model.LangEN]
}
