package engine

import (
	"github.com/persuasion-engine/internal/models"
)

// Template slots: {{.Topic}} is the topic as given, {{.Hashtag}} is the topic
// folded into a single hashtag token.

const tplLinkedInSubtle = `Most professionals think {{.Topic}} is about following best practices. Here's what 5 years of data revealed... 🤔

The conventional approach misses 73% of the opportunity.

After analyzing 10,000+ cases, I discovered 3 patterns that separate top performers:

→ They focus on what others ignore
→ They question what "everyone knows"  
→ They measure what matters, not what's easy

Last quarter, a client applied this framework and saw results that surprised even me.

The difference wasn't talent or resources. It was perspective.

What's been your experience with {{.Topic}}? Have you noticed similar patterns? 💭

P.S. The full methodology is something I reserve for strategic conversations. But if this resonates, let's connect. 🚀`

const tplLinkedInModerate = `Everyone talks about {{.Topic}}, but nobody talks about the psychology behind it... 💡

Here's what changed everything for me:

The moment I stopped following "best practices" and started understanding human behavior.

3 insights that transformed my approach:

🎯 People don't buy products, they buy better versions of themselves
🧠 Emotion drives decision, logic justifies it
⚡ Timing beats perfection every time

The result? 300% improvement in outcomes within 60 days.

But here's the thing most people miss...

Success isn't about having the right strategy. It's about understanding the right psychology.

What's your take on this? Have you seen similar patterns in your field? 🤝

(The framework I use is detailed in my bio - but only for those ready to think differently) 🔗`

const tplLinkedInAggressive = `STOP doing {{.Topic}} the way everyone else does it. 🛑

I'm about to share something that will either excite you or make you uncomfortable...

After working with 500+ companies, I've discovered that 87% of professionals are doing {{.Topic}} completely wrong.

Not because they're not smart. Not because they don't work hard.

Because they're following advice from people who've never achieved what they want to achieve.

Here's the truth nobody wants to tell you:

❌ The "proven methods" are proven to keep you average
❌ The "safe approach" is the riskiest thing you can do
❌ The "best practices" are best at maintaining the status quo

The companies that 10x their results? They do the opposite.

They think like psychologists, not practitioners.
They focus on influence, not information.
They create desire, not just deliver value.

Ready to join the 13% who actually get results?

The methodology is in my bio. But fair warning - it's not for everyone. 🔥

Only apply if you're ready to leave average behind.`

const tplInstagramSubtle = `Everyone's talking about {{.Topic}}, but here's what they're not telling you... ✨

The secret isn't in the strategy. It's in the psychology. 🧠

3 things that changed my perspective:
• Authenticity beats perfection every time 💯
• Small consistent actions > big sporadic efforts 
• Your unique viewpoint is your superpower 🦸‍♀️

Swipe to see the exact mindset shift that transformed everything ➡️

What's been your biggest insight about {{.Topic}}? Drop it below! 👇

#{{.Hashtag}} #mindsetshift #authenticity #growth`

const tplInstagramModerate = `Plot twist: {{.Topic}} isn't what you think it is... 🌟

Here's what I discovered after 3 years of getting it wrong:

The game isn't about being perfect.
It's about being magnetic. 🧲

The framework that changed everything:
1️⃣ Create curiosity, not content
2️⃣ Build bridges, not walls
3️⃣ Spark conversations, not just likes

The result? My engagement went from 2% to 47% in 90 days.

But here's the real secret... 🤫

It's not about the algorithm. It's about human psychology.

Save this post for when you're ready to level up 📌

Tag someone who needs to see this shift! 👥

#{{.Hashtag}} #psychology #engagement #growth #mindset`

const tplInstagramAggressive = `Unpopular opinion: Most advice about {{.Topic}} is keeping you stuck. 🔥

I said what I said. 💯

Here's why 95% of people fail at {{.Topic}}:

They're optimizing for likes, not lives.
They're following trends, not truth.
They're copying others instead of creating value.

The 5% who actually succeed? They do this instead:

🎯 They study psychology, not just strategy
🧠 They create desire, not just deliver content  
⚡ They build movements, not just audiences

The shift that changed everything for me:

I stopped asking "What should I post?"
I started asking "What do they need to feel?"

The result? 10x growth in 6 months.

But here's what nobody tells you... 👀

Success isn't about having more followers.
It's about having more influence.

Ready to stop playing small?

The blueprint is in my bio. But only if you're serious about results. 🚀

#{{.Hashtag}} #influence #psychology #growth #truth`

// builtinTemplates is the platform x intensity matrix served by DefaultRegistry
var builtinTemplates = map[Key]string{
	{models.PlatformLinkedIn, models.PersuasionSubtle}:      tplLinkedInSubtle,
	{models.PlatformLinkedIn, models.PersuasionModerate}:    tplLinkedInModerate,
	{models.PlatformLinkedIn, models.PersuasionAggressive}:  tplLinkedInAggressive,
	{models.PlatformInstagram, models.PersuasionSubtle}:     tplInstagramSubtle,
	{models.PlatformInstagram, models.PersuasionModerate}:   tplInstagramModerate,
	{models.PlatformInstagram, models.PersuasionAggressive}: tplInstagramAggressive,
}
